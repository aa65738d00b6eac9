package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mealweek/internal/amount"
	"mealweek/internal/fraction"
	"mealweek/internal/plan"
	"mealweek/internal/recipe"
	"mealweek/internal/shopping"
	"mealweek/internal/units"
)

func (s *Server) listRecipes(c *gin.Context) {
	recipes, err := s.recipes.List(c.Request.Context(), currentUser(c))
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (s *Server) createRecipe(c *gin.Context) {
	var rec recipe.Recipe
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe payload"})
		return
	}
	if rec.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe title is required"})
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UserID = currentUser(c)
	rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	for i := range rec.Ingredients {
		rec.Ingredients[i].Unit = units.Normalize(rec.Ingredients[i].Unit)
		rec.Ingredients[i].Name = recipe.NormalizeName(rec.Ingredients[i].Name)
	}
	if err := s.recipes.Save(c.Request.Context(), rec); err != nil {
		log.Printf("Error saving recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) getRecipe(c *gin.Context) {
	rec, err := s.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("Error loading recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}
	if rec == nil || rec.UserID != currentUser(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	rec, err := s.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("Error loading recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if rec == nil || rec.UserID != currentUser(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err := s.recipes.Delete(c.Request.Context(), rec.ID); err != nil {
		log.Printf("Error deleting recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clipRecipe(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	rec, err := s.clipper.ClipURL(c.Request.Context(), req.URL, currentUser(c))
	if err != nil {
		log.Printf("Error clipping %s: %v", req.URL, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not extract a recipe from that page"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) getPlan(c *gin.Context) {
	p, err := s.shopping.Plan(c.Request.Context(), currentUser(c), c.Param("week"))
	if err != nil {
		log.Printf("Error loading plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}
	if p == nil {
		p = plan.NewWeek()
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) putPlan(c *gin.Context) {
	var p plan.WeeklyPlan
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan payload"})
		return
	}
	if err := validatePlan(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := s.shopping.SavePlan(c.Request.Context(), currentUser(c), c.Param("week"), &p)
	if err != nil {
		log.Printf("Error saving plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": p, "shopping_list": items})
}

func (s *Server) removePlanItem(c *gin.Context) {
	p, items, err := s.shopping.RemovePlannedItem(c.Request.Context(), currentUser(c), c.Param("week"), c.Param("itemID"))
	if err != nil {
		if errors.Is(err, shopping.ErrPlanNotFound) || errors.Is(err, shopping.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan item not found"})
			return
		}
		log.Printf("Error removing plan item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove plan item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": p, "shopping_list": items})
}

func (s *Server) getShoppingList(c *gin.Context) {
	items, err := s.shopping.List(c.Request.Context(), currentUser(c), c.Param("week"))
	if err != nil {
		log.Printf("Error loading shopping list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) checkSource(c *gin.Context) {
	var req struct {
		SourceIndex int    `json:"source_index"`
		Checked     bool   `json:"checked"`
		CheckedFrom string `json:"checked_from"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check payload"})
		return
	}
	from := shopping.CheckedFrom(req.CheckedFrom)
	if from != "" && from != shopping.CheckedByUser && from != shopping.CheckedByFridge {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checked_from value"})
		return
	}
	item, err := s.shopping.SetChecked(c.Request.Context(), currentUser(c), c.Param("id"), req.SourceIndex, req.Checked, from)
	if err != nil {
		if errors.Is(err, shopping.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		log.Printf("Error updating check state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) addManualSource(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Amount string `json:"amount"`
		Unit   string `json:"unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	amt := fraction.Zero()
	if req.Amount != "" {
		parsed, ok := amount.Parse(req.Amount)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse amount"})
			return
		}
		amt = parsed
	}
	item, err := s.shopping.AddManualSource(c.Request.Context(), currentUser(c), c.Param("week"), req.Name, shopping.Source{
		Amount: amt,
		Unit:   units.Normalize(req.Unit),
	})
	if err != nil {
		log.Printf("Error adding manual item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// validatePlan rejects payloads whose shape would corrupt stored plans:
// unknown slot kinds, recipe slots without a recipe id, or leftovers without
// a title. Missing days and nil meal maps are tolerated; persistence fills
// those in.
func validatePlan(p *plan.WeeklyPlan) error {
	for di := range p.Days {
		for _, mt := range plan.MealTypes {
			for si := range p.Days[di].Meals[mt] {
				item := &p.Days[di].Meals[mt][si]
				if item.ID == "" {
					item.ID = uuid.NewString()
				}
				switch item.Kind {
				case plan.SlotRecipe:
					if item.RecipeID == "" {
						return errors.New("recipe slot is missing recipe_id")
					}
					if item.Quantity < 0 {
						return errors.New("slot quantity must not be negative")
					}
				case plan.SlotLeftover:
					if item.Title == "" {
						return errors.New("leftover slot is missing title")
					}
				default:
					return errors.New("unknown slot kind")
				}
			}
		}
	}
	return nil
}
