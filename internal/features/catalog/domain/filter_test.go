package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fixtureItems() []Item {
	return []Item{
		{
			ID:       "c1",
			Name:     "Blue Vase",
			Category: "Pottery",
			Price:    decimal.RequireFromString("20"),
			Rating:   4,
			Tags:     []string{"handmade"},
			ImageRef: "images/vase.jpg",
		},
		{
			ID:       "c2",
			Name:     "Oak Bowl",
			Category: "Woodwork",
			Price:    decimal.RequireFromString("35.50"),
			Rating:   4.8,
			Tags:     []string{"handmade", "eco-friendly"},
			ImageRef: "images/bowl.jpg",
		},
		{
			ID:       "c3",
			Name:     "Macrame Hanger",
			Category: "Textiles",
			Price:    decimal.RequireFromString("12"),
			Rating:   3.2,
			Tags:     []string{"boho"},
			ImageRef: "images/hanger.jpg",
		},
	}
}

// TestApply_EmptyCriteriaIsIdentity verifies the zero-value criteria returns
// the input unchanged.
func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{})

	assert.Equal(t, items, result)
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{Search: "bLuE"})

	assert.Len(t, result, 1)
	assert.Equal(t, "c1", result[0].ID)

	result = Apply(items, Criteria{Search: "glass"})
	assert.Empty(t, result)
}

func TestApply_CategoryMembership(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{Categories: []string{"Pottery", "Textiles"}})

	assert.Len(t, result, 2)
	assert.Equal(t, "c1", result[0].ID)
	assert.Equal(t, "c3", result[1].ID)
}

// TestApply_MinRatingsIsUnion verifies an item matches when its rating meets
// ANY selected threshold, not all of them.
func TestApply_MinRatingsIsUnion(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{MinRatings: []int{5, 3}})

	// Nothing reaches 5, but everything reaches 3 except the 3.2-rated
	// hanger... which also reaches 3. Union admits all three.
	assert.Len(t, result, 3)

	result = Apply(items, Criteria{MinRatings: []int{5}})
	assert.Empty(t, result)
}

func TestApply_TagsIntersect(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{Tags: []string{"eco-friendly", "boho"}})

	assert.Len(t, result, 2)
	assert.Equal(t, "c2", result[0].ID)
	assert.Equal(t, "c3", result[1].ID)
}

// TestApply_PriceRange covers the Blue Vase fixture: a (0,10) range excludes
// the $20 vase, a (0,50) range includes it.
func TestApply_PriceRange(t *testing.T) {
	items := fixtureItems()[:1]

	result := Apply(items, Criteria{
		PriceMax: decimal.RequireFromString("10"),
	})
	assert.Empty(t, result)

	result = Apply(items, Criteria{
		PriceMax: decimal.RequireFromString("50"),
	})
	assert.Len(t, result, 1)
}

// TestCriteria_NormalizeClampsInvertedRange verifies min > max is repaired by
// clamping the lower bound instead of rejecting the criteria.
func TestCriteria_NormalizeClampsInvertedRange(t *testing.T) {
	c := Criteria{
		PriceMin: decimal.RequireFromString("80"),
		PriceMax: decimal.RequireFromString("30"),
	}

	n := c.Normalize()

	assert.True(t, n.PriceMin.Equal(n.PriceMax))
	assert.True(t, n.PriceMax.Equal(decimal.RequireFromString("30")))
}

// TestApply_MalformedRecordsExcluded verifies fail-open exclusion: a bad
// record drops out of the result without aborting the pass.
func TestApply_MalformedRecordsExcluded(t *testing.T) {
	items := fixtureItems()
	items = append(items,
		Item{ID: "", Name: "No ID", Price: decimal.RequireFromString("5")},
		Item{ID: "c5", Name: "Bad Rating", Rating: 7, Price: decimal.RequireFromString("5")},
		Item{ID: "c6", Name: "Negative", Price: decimal.RequireFromString("-1")},
	)

	result := Apply(items, Criteria{})

	assert.Len(t, result, 3)
	for _, item := range result {
		assert.True(t, item.Valid())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := fixtureItems()
	original := make([]Item, len(items))
	copy(original, items)

	Apply(items, Criteria{Search: "vase"})

	assert.Equal(t, original, items)
}

func TestApply_ConjunctionAcrossPredicates(t *testing.T) {
	items := fixtureItems()

	result := Apply(items, Criteria{
		Search:     "bowl",
		Categories: []string{"Woodwork"},
		Tags:       []string{"handmade"},
		MinRatings: []int{4},
		PriceMax:   decimal.RequireFromString("40"),
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "c2", result[0].ID)

	// Tightening one predicate drops the match.
	result = Apply(items, Criteria{
		Search:     "bowl",
		Categories: []string{"Pottery"},
	})
	assert.Empty(t, result)
}

func TestItem_Valid(t *testing.T) {
	ts := time.Now()

	valid := Item{ID: "x", Name: "X", Price: decimal.Zero, CreatedAt: ts}
	assert.True(t, valid.Valid())

	assert.False(t, Item{Name: "no id"}.Valid())
	assert.False(t, Item{ID: "x"}.Valid())
	assert.False(t, Item{ID: "x", Name: "X", Rating: -0.1}.Valid())
}
