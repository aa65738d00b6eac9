package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mealweek/internal/clipper"
	"mealweek/internal/identity"
	"mealweek/internal/recipe"
	"mealweek/internal/shopping"
)

// Server wires the HTTP API: recipe catalog CRUD, weekly plan get/put, and
// the shopping list derived from it. All quantity logic lives in the
// shopping service; handlers only validate shapes and translate errors.
type Server struct {
	verifier *identity.Verifier
	recipes  *recipe.Repository
	shopping *shopping.Service
	clipper  *clipper.Clipper
}

// NewServer creates a Server.
func NewServer(verifier *identity.Verifier, recipes *recipe.Repository, svc *shopping.Service, clip *clipper.Clipper) *Server {
	return &Server{
		verifier: verifier,
		recipes:  recipes,
		shopping: svc,
		clipper:  clip,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", s.authMiddleware())
	{
		api.GET("/recipes", s.listRecipes)
		api.POST("/recipes", s.createRecipe)
		api.GET("/recipes/:id", s.getRecipe)
		api.DELETE("/recipes/:id", s.deleteRecipe)
		api.POST("/recipes/clip", s.clipRecipe)

		api.GET("/weeks/:week/plan", s.getPlan)
		api.PUT("/weeks/:week/plan", s.putPlan)
		api.DELETE("/weeks/:week/plan/items/:itemID", s.removePlanItem)

		api.GET("/weeks/:week/shopping-list", s.getShoppingList)
		api.POST("/weeks/:week/shopping-list/manual", s.addManualSource)
		api.POST("/shopping-items/:id/check", s.checkSource)
	}

	return r
}

// authMiddleware resolves the user id from the bearer token and aborts
// unauthenticated requests.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}
		userID, err := s.verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString("user_id")
}
