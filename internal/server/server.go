// Package server is the mock REST backend, a stand-in for json-server:
// plain resource routes over a single JSON document file. Responses are
// raw documents and arrays, no envelope, because that is the contract
// the client speaks.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Server owns the router and the document store.
type Server struct {
	store *Store
	log   *logger.Logger
}

// NewServer creates the mock backend over the given store.
func NewServer(store *Store, log *logger.Logger) *Server {
	return &Server{store: store, log: log}
}

// Router builds the gin engine with all resource routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default(), s.requestLog())

	r.GET("/recipes", s.listRecipes)
	r.POST("/recipes", s.createRecipe)
	r.GET("/recipes/:id", s.getRecipe)
	r.PATCH("/recipes/:id", s.patchRecipe)
	r.DELETE("/recipes/:id", s.deleteRecipe)

	r.GET("/users", s.listUsers)
	r.POST("/users", s.createUser)

	r.GET("/favorites", s.getFavorites)
	r.PUT("/favorites", s.putFavorites)

	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("server: %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) listRecipes(c *gin.Context) {
	query := recipeQuery{
		q:          c.Query("q"),
		cuisine:    c.Query("cuisine"),
		category:   c.Query("category"),
		difficulty: c.Query("difficulty"),
		createdBy:  c.Query("createdBy"),
	}
	c.JSON(http.StatusOK, s.store.ListRecipes(query))
}

func (s *Server) getRecipe(c *gin.Context) {
	r, ok := s.store.GetRecipe(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) createRecipe(c *gin.Context) {
	var r domain.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe: " + err.Error()})
		return
	}
	if r.ID == "" {
		r.ID = "r_" + uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := s.store.AddRecipe(r); err != nil {
		s.log.Error("server: store recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) patchRecipe(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch: " + err.Error()})
		return
	}

	r, found, err := s.store.PatchRecipe(c.Param("id"), patch)
	if err != nil {
		s.log.Error("server: patch recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	found, err := s.store.DeleteRecipe(c.Param("id"))
	if err != nil {
		s.log.Error("server: delete recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListUsers(c.Query("email"), c.Query("password")))
}

func (s *Server) createUser(c *gin.Context) {
	var u userRecord
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user: " + err.Error()})
		return
	}
	if u.ID == "" {
		u.ID = "u_" + uuid.NewString()
	}
	if err := s.store.AddUser(u); err != nil {
		s.log.Error("server: store user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) getFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Favorites())
}

func (s *Server) putFavorites(c *gin.Context) {
	var idx domain.FavoritesIndex
	if err := c.ShouldBindJSON(&idx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favorites document: " + err.Error()})
		return
	}
	if err := s.store.ReplaceFavorites(idx); err != nil {
		s.log.Error("server: store favorites: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
		return
	}
	c.JSON(http.StatusOK, idx)
}
