package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/domain"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	names := h.catalog.Products()
	products := make([]gin.H, 0, len(names))
	for _, name := range names {
		spec, _ := h.catalog.Lookup(name)
		products = append(products, gin.H{
			"name":                   name,
			"brand":                  domain.BrandOf(name),
			"pack_size":              spec.PackSize,
			"pack_bottles":           spec.PackBottles,
			"case_equivalent_factor": spec.CaseEquivalentFactor,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *CatalogHandler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"markets": h.catalog.Markets()})
}

func (h *CatalogHandler) GetAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": h.catalog.Accounts()})
}

func (h *CatalogHandler) GetWeeks(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid year: "+raw)
			return
		}
		year = parsed
	}

	weeks := make([]string, 0, 52)
	for _, w := range catalog.Weeks(year) {
		weeks = append(weeks, w.Format(domain.WeekLayout))
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "weeks": weeks})
}
