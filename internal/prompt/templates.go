package prompt

const defaultSystemPrompt = `You are a senior direct-response marketing strategist helping build a OneSheet research document.

You work from the product information and customer reviews you are given. Never invent reviews or statistics.
Follow the requested output format exactly: plain text, the exact labels shown, one item per line.
Do not wrap the answer in code fences and do not add commentary before or after it.`

var builtinTemplates = []Template{
	{
		Kind:        KindAngles,
		Description: "Distinct marketing angles, most promising first",
		Body: `Product: {productName}
Description: {productDescription}
Target audience: {targetAudience}

Customer reviews:
{customerReviews}

Propose {count} distinct marketing angles for this product, ordered from most to least promising.

Format each angle as a numbered line with a short title, followed by one or two lines describing the angle:
1. <angle title>
<why this angle works for this audience>`,
	},
	{
		Kind:        KindBenefits,
		Description: "Benefits with supporting review quotes",
		Body: `Product: {productName}
Description: {productDescription}

Customer reviews:
{customerReviews}

List the benefits customers actually experience. Under each benefit, quote the review lines that support it.

Format:
Benefits:
- <benefit>
"<supporting review quote>"`,
	},
	{
		Kind:        KindPainPoints,
		Description: "Pain points with supporting review quotes",
		Body: `Product: {productName}
Target audience: {targetAudience}

Customer reviews:
{customerReviews}

List the pain points these customers had before finding the product. Quote the review lines that show each one.

Format:
Pain Points:
- <pain point>
"<supporting review quote>"`,
	},
	{
		Kind:        KindFeatures,
		Description: "Product features mapped from the description",
		Body: `Product: {productName}
Description: {productDescription}

List the concrete product features a buyer would care about. Quote review lines that mention a feature where they exist.

Format:
Features:
- <feature>
"<supporting review quote>"`,
	},
	{
		Kind:        KindObjections,
		Description: "Purchase objections with review evidence",
		Body: `Product: {productName}
Price: {price}

Customer reviews:
{customerReviews}

List the objections a hesitant buyer would raise before purchasing. Quote reviews that voice the objection.

Format:
Objections:
- <objection>
"<supporting review quote>"`,
	},
	{
		Kind:        KindFailedSolutions,
		Description: "Alternatives customers tried before",
		Body: `Product: {productName}
Target audience: {targetAudience}

Customer reviews:
{customerReviews}

List the solutions customers tried before this product and why those failed them.

Format:
Failed Solutions:
- <solution they tried and why it failed>
"<supporting review quote>"`,
	},
	{
		Kind:        KindPersonas,
		Description: "Customer personas with demographics and awareness level",
		Body: `Product: {productName}
Description: {productDescription}
Target audience: {targetAudience}

Customer reviews:
{customerReviews}

Create {count} distinct customer personas for this product.

Use exactly this format for each persona:
Persona 1: <short persona title>
Age: <age range>
Gender: <gender>
Location: <location>
Income: <income range>
Education: <education>
Occupation: <occupation>
Awareness Level: <Unaware | Problem Aware | Solution Aware | Product Aware | Most Aware>
Customer Language:
- "<phrase this persona would actually say>"`,
	},
	{
		Kind:        KindCompetitorGap,
		Description: "Gaps competitors leave open",
		Body: `Product: {productName}
Competitors: {competitors}

Customer reviews:
{customerReviews}

List the gaps competitors leave open that this product can own. Quote reviews that show the gap.

Format:
- <gap>
"<supporting review quote>"`,
	},
	{
		Kind:        KindHeadlines,
		Description: "Headlines pulled from customer reviews",
		Body: `Product: {productName}
Angle: {angle}

Customer reviews:
{customerReviews}

Write {count} ad headlines that reuse the customers' own words.

Format each headline as a numbered block:
1. <headline>
Original: <review text the headline came from>
Why: <why this headline works>`,
	},
	{
		Kind:        KindOneLiners,
		Description: "Short hooks for ads and emails",
		Body: `Product: {productName}
Angle: {angle}
Target audience: {targetAudience}

Write {count} punchy one-line hooks for ads and email subject lines.

Format:
- <one-liner>`,
	},
	{
		Kind:        KindVisualIdeas,
		Description: "Visual concepts and Midjourney prompts per benefit or pain point",
		Body: `Product: {productName}
Benefits: {benefits}
Pain points: {painPoints}

For each benefit and pain point, propose visual concepts for static ads and a Midjourney prompt for each concept.

Format:
Benefit 1: <benefit>
Visual 1: <concept>
Prompt: <midjourney prompt>
Pain Point 1: <pain point>
Visual 1: <concept>
Prompt: <midjourney prompt>`,
	},
	{
		Kind:        KindProblemSolution,
		Description: "Problem/solution scenarios for video scripts",
		Body: `Product: {productName}
Pain points: {painPoints}
Target audience: {targetAudience}

Write {count} short problem/solution scenarios a creator could film. Each scenario is one bullet that states the problem and how the product solves it.

Format:
- <scenario>`,
	},
}

// DefaultCatalog returns the built-in template set.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(builtinTemplates...)
	if err != nil {
		panic(err) // built-in templates always carry a kind
	}
	return c
}
