package cocktaildb

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
)

type drinkList struct {
	Drinks []drinkSummary `json:"drinks"`
}

type drinkSummary struct {
	ID    string `json:"idDrink"`
	Name  string `json:"strDrink"`
	Thumb string `json:"strDrinkThumb"`
}

type drinkDetailList struct {
	Drinks []drinkDetail `json:"drinks"`
}

type drinkDetail struct {
	ID          string `json:"idDrink"`
	Name        string `json:"strDrink"`
	Thumb       string `json:"strDrinkThumb"`
	Ingredient1 string `json:"strIngredient1"`
	Ingredient2 string `json:"strIngredient2"`
	Ingredient3 string `json:"strIngredient3"`
	Ingredient4 string `json:"strIngredient4"`
	Ingredient5 string `json:"strIngredient5"`
	Ingredient6 string `json:"strIngredient6"`
}

func (d drinkDetail) ingredients() []string {
	raw := []string{
		d.Ingredient1, d.Ingredient2, d.Ingredient3,
		d.Ingredient4, d.Ingredient5, d.Ingredient6,
	}
	var out []string
	for _, ing := range raw {
		if ing != "" {
			out = append(out, ing)
		}
	}
	return out
}

var nameSubstitutions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)cocktail`), "Cake"},
	{regexp.MustCompile(`(?i)drink`), "Delight"},
	{regexp.MustCompile(`(?i)shot`), "Slice"},
}

const descriptionLimit = 100

// transform maps one drink record onto a cake product. The category
// bucket and badge depend on the item's position within the batch; the
// commercial fields are demo filler inside fixed ranges.
func transform(d drinkDetail, index int) domain.Product {
	categories := domain.Categories()
	name := cakeName(d.Name)
	ingredients := d.ingredients()

	var badge domain.Badge
	switch index % 3 {
	case 0:
		badge = domain.BadgeNew
	case 1:
		badge = domain.BadgeSale
	}

	return domain.Product{
		ID:              d.ID,
		Name:            name,
		Category:        categories[index%len(categories)],
		Price:           round2(rand.Float64()*50 + 30),
		OriginalPrice:   round2(rand.Float64()*30 + 60),
		Image:           d.Thumb,
		Description:     description(name, ingredients),
		Rating:          round1(rand.Float64()*1.5 + 3.5),
		Reviews:         rand.IntN(200) + 20,
		Badge:           badge,
		Ingredients:     ingredients,
		Servings:        rand.IntN(4) + 6,
		PreparationTime: rand.IntN(30) + 30,
	}
}

func cakeName(drinkName string) string {
	name := drinkName
	for _, sub := range nameSubstitutions {
		name = sub.re.ReplaceAllString(name, sub.repl)
	}
	return name
}

// description synthesizes the marketing blurb from the name and the
// first three ingredients. The ellipsis is appended whether or not the
// text was actually trimmed at the 100-character cap; downstream demo
// fidelity depends on that exact output.
func description(name string, ingredients []string) string {
	first := ingredients[:min(3, len(ingredients))]
	s := fmt.Sprintf(
		"Delicious %s featuring %s. Perfect for any celebration!",
		strings.ToLower(name), strings.Join(first, ", "),
	)

	if r := []rune(s); len(r) > descriptionLimit {
		s = string(r[:descriptionLimit])
	}
	return s + "..."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
