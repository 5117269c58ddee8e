package seed

// DefaultCategories are created in this order; their position is their sort order.
var DefaultCategories = []Category{
	{Name: "Community Stories", Description: "Heartwarming stories from our community"},
	{Name: "Volunteer Spotlight", Description: "Highlighting our amazing volunteers"},
	{Name: "Health & Wellness", Description: "Tips for healthy aging"},
	{Name: "Program Updates", Description: "Latest news about our programs"},
	{Name: "Resources", Description: "Helpful resources for seniors and families"},
}

// SamplePosts are published on seeding.
var SamplePosts = []Post{
	{
		Title:         "Why Community Support Matters for Seniors",
		CategoryIndex: 0,
		Tags:          []string{"community", "social-isolation", "mental-health", "volunteering"},
		Content: `# The Importance of Community

As our communities age, neighbourhood support matters more every year. Social
isolation among seniors affects health, quality of life and the wellbeing of
whole streets.

## The Challenge of Isolation

Many older people live alone with limited mobility. Isolation can lead to:

- Depression and anxiety
- Decline in physical health
- Reduced cognitive function

## The Power of Neighbours

Regular check-ins, friendly conversations and shared activities create bonds
that benefit seniors and volunteers alike.

1. **Improved mental health** through regular social contact
2. **Better physical health** with help on everyday tasks
3. **Stronger communities** built on intergenerational connections

Join us in making a difference in your community today!
`,
	},
	{
		Title:         "How ENW Connects Neighbours Safely and Simply",
		CategoryIndex: 3,
		Tags:          []string{"safety", "security", "technology", "trust"},
		Content: `# Safe and Simple Connections

Safety and trust are the cornerstones of community support. Every connection
between a volunteer and a senior is verified.

## Volunteer Screening

Every volunteer goes through:

- **Background checks**
- **Reference checks**
- **An interview**
- **Safety training**

## Keeping It Simple

1. **Easy registration** with clear online forms
2. **Quick matching** based on location and needs
3. **Ongoing support** from our coordinators

Join our trusted network and see how simple helping can be!
`,
	},
}
