package recipe

import "testing"

func TestSplitLine(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Ingredient
	}{
		{
			"MixedNumberWithUnit",
			"1 1/2 cups rolled oats",
			Ingredient{Amount: "1 1/2", Unit: "cup", Name: "rolled oats"},
		},
		{
			"UnicodeFraction",
			"¾ cup milk",
			Ingredient{Amount: "¾", Unit: "cup", Name: "milk"},
		},
		{
			"CountNoUnit",
			"4 corn tortillas",
			Ingredient{Amount: "4", Name: "corn tortillas"},
		},
		{
			"RangeWithUnitWord",
			"2-3 cloves garlic",
			Ingredient{Amount: "2-3", Unit: "cloves", Name: "garlic"},
		},
		{
			"NoQuantity",
			"Salt to taste",
			Ingredient{Name: "Salt to taste"},
		},
		{
			"PlainName",
			"Avocado oil",
			Ingredient{Name: "Avocado oil"},
		},
		{
			"Empty",
			"",
			Ingredient{},
		},
		{
			"AbbreviatedUnitWithDot",
			"2 tbsp. olive oil",
			Ingredient{Amount: "2", Unit: "tbsp", Name: "olive oil"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitLine(c.in)
			if got != c.want {
				t.Errorf("SplitLine(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Oats "); got != "oats" {
		t.Errorf("NormalizeName = %q, want %q", got, "oats")
	}
}
