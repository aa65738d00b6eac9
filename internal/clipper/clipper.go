// Package clipper imports recipes from web pages. It relies on the
// schema.org Recipe markup most recipe sites publish (JSON-LD first,
// itemprop microdata as fallback) rather than any content inference, and
// runs every ingredient line through the splitter so amounts and units are
// usable for aggregation.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"mealweek/internal/amount"
	"mealweek/internal/recipe"
)

// Clipper fetches and extracts recipes from URLs.
type Clipper struct {
	client *http.Client
	repo   *recipe.Repository
}

// NewClipper creates a new Clipper instance.
func NewClipper(repo *recipe.Repository) *Clipper {
	return &Clipper{
		client: &http.Client{Timeout: 15 * time.Second},
		repo:   repo,
	}
}

// ClipURL fetches the URL, extracts the recipe, and saves it to the catalog
// under the given user.
func (c *Clipper) ClipURL(ctx context.Context, url, userID string) (*recipe.Recipe, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	rec, err := extract(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract recipe from %s: %w", url, err)
	}

	rec.ID = uuid.NewString()
	rec.UserID = userID
	rec.SourceURL = url
	rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if c.repo != nil {
		if err := c.repo.Save(ctx, *rec); err != nil {
			return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
		}
	}
	return rec, nil
}

func (c *Clipper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// ldRecipe mirrors the parts of schema.org/Recipe the importer cares about.
// Several fields vary in shape across sites, hence the raw messages.
type ldRecipe struct {
	Type             json.RawMessage `json:"@type"`
	Name             string          `json:"name"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	Ingredients      []string        `json:"ingredients"` // legacy property name
	Instructions     json.RawMessage `json:"recipeInstructions"`
	Yield            json.RawMessage `json:"recipeYield"`
	TotalTime        string          `json:"totalTime"`
	Keywords         json.RawMessage `json:"keywords"`
	Graph            []ldRecipe      `json:"@graph"`
}

func extract(doc *goquery.Document) (*recipe.Recipe, error) {
	var found *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if r := parseLD(s.Text()); r != nil {
			found = r
			return false
		}
		return true
	})
	if found != nil {
		return fromLD(found), nil
	}

	// Microdata fallback for older sites.
	var lines []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return nil, fmt.Errorf("no schema.org recipe markup found")
	}

	title := strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return buildRecipe(title, lines, "", nil, ""), nil
}

// parseLD decodes one JSON-LD block and digs out the Recipe node, which may
// sit at the top level, inside an array, or inside an @graph.
func parseLD(raw string) *ldRecipe {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var single ldRecipe
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if r := pickRecipe(&single); r != nil {
			return r
		}
	}

	var many []ldRecipe
	if err := json.Unmarshal([]byte(raw), &many); err == nil {
		for i := range many {
			if r := pickRecipe(&many[i]); r != nil {
				return r
			}
		}
	}
	return nil
}

func pickRecipe(node *ldRecipe) *ldRecipe {
	if isRecipeType(node.Type) && (len(node.RecipeIngredient) > 0 || len(node.Ingredients) > 0) {
		return node
	}
	for i := range node.Graph {
		if r := pickRecipe(&node.Graph[i]); r != nil {
			return r
		}
	}
	return nil
}

// isRecipeType handles "@type": "Recipe" as well as the array form.
func isRecipeType(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "Recipe"
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

func fromLD(r *ldRecipe) *recipe.Recipe {
	lines := r.RecipeIngredient
	if len(lines) == 0 {
		lines = r.Ingredients
	}
	return buildRecipe(r.Name, lines, instructionsText(r.Instructions), keywordList(r.Keywords), yieldText(r.Yield))
}

func buildRecipe(title string, lines []string, instructions string, tags []string, servings string) *recipe.Recipe {
	// Yield text arrives as anything from "4" to "Serves 4-6 people";
	// store the canonical count when one can be extracted.
	if f, ok := amount.ParseServings(servings); ok {
		servings = f.MixedString()
	}
	rec := &recipe.Recipe{
		Title:        title,
		Instructions: instructions,
		Tags:         tags,
		Servings:     servings,
	}
	for _, line := range lines {
		if ing := recipe.SplitLine(line); ing.Name != "" {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	}
	return rec
}

// instructionsText flattens the three shapes recipeInstructions arrives in:
// a plain string, a list of strings, or a list of HowToStep objects.
func instructionsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var steps []json.RawMessage
	if err := json.Unmarshal(raw, &steps); err != nil {
		return ""
	}
	var sb strings.Builder
	for i, step := range steps {
		var text string
		if err := json.Unmarshal(step, &text); err != nil {
			var howTo struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(step, &howTo); err != nil {
				continue
			}
			text = howTo.Text
		}
		if text == "" {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, strings.TrimSpace(text))
	}
	return sb.String()
}

func keywordList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var tags []string
		for _, t := range strings.Split(s, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

func yieldText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%g", n)
	}
	return ""
}
