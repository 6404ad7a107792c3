package reference

var defaultHarmful = []HarmfulIngredient{
	{Fragment: "sodium nitrite", Score: 95, Impact: "Forms nitrosamines, linked to cancer"},
	{Fragment: "bht", Score: 90, Impact: "Potential carcinogen, hormone disruptor"},
	{Fragment: "bha", Score: 92, Impact: "Potential carcinogen, endocrine disruptor"},
	{Fragment: "red dye 40", Score: 85, Impact: "Linked to hyperactivity, allergic reactions"},
	{Fragment: "yellow 5", Score: 85, Impact: "Allergic reactions, hyperactivity"},
	{Fragment: "yellow 6", Score: 85, Impact: "May cause hyperactivity"},
	{Fragment: "blue 1", Score: 82, Impact: "Possible allergen, hyperactivity concerns"},
	{Fragment: "tbhq", Score: 88, Impact: "Vision disturbances, potential carcinogen"},
	{Fragment: "phosphoric acid", Score: 80, Impact: "Bone density loss, tooth damage"},
	{Fragment: "sodium benzoate", Score: 70, Impact: "Forms benzene with vitamin C"},
	{Fragment: "aspartame", Score: 75, Impact: "Potential neurotoxin"},
	{Fragment: "carrageenan", Score: 70, Impact: "Digestive inflammation"},
	{Fragment: "high fructose corn syrup", Score: 65, Impact: "Obesity, diabetes risk"},
	{Fragment: "msg", Score: 60, Impact: "Headaches in sensitive individuals"},
	{Fragment: "monosodium glutamate", Score: 60, Impact: "Headaches, nausea"},
}

var defaultAllergens = []string{
	"milk", "eggs", "peanuts", "tree nuts", "soy", "wheat",
	"fish", "shellfish", "sesame", "mustard", "celery", "lupin",
}

// DefaultTable returns the built-in reference table.
func DefaultTable() *Table {
	return MustNewTable(defaultHarmful, defaultAllergens)
}
