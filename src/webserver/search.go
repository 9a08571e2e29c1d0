package webserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/company-scout/src/data"
)

type Search struct {
	builder  Runner
	rdb      *redis.Client
	notifier Notifier
}

func NewSearch(builder Runner, rdb *redis.Client, notifier Notifier) Search {
	return Search{builder: builder, rdb: rdb, notifier: notifier}
}

// Create runs one search synchronously and returns the report. Partial data
// always renders; failures inside the pipeline surface as warnings on the
// report, not as HTTP errors.
func (s Search) Create(c *gin.Context) {
	var req struct {
		Company     string `json:"company" binding:"required,max=200"`
		AllowScrape bool   `json:"allowScrape"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "company name is required"})
		return
	}

	start := time.Now()
	rep := s.builder.Run(c.Request.Context(), company, req.AllowScrape)
	searchDuration.Observe(time.Since(start).Seconds())
	searchesTotal.WithLabelValues("ok").Inc()

	memberCount := 0
	for _, org := range rep.Orgs {
		memberCount += len(org.Members)
	}
	log.Printf("search %s for %q: %d orgs, %d members, %d warnings in %s",
		rep.ID, company, len(rep.Orgs), memberCount, len(rep.Warnings), time.Since(start).Round(time.Millisecond))

	if s.rdb != nil {
		go func() {
			err := data.PublishSearch(context.Background(), s.rdb, map[string]interface{}{
				"id":      rep.ID,
				"company": rep.Company,
				"orgs":    len(rep.Orgs),
				"members": memberCount,
				"time":    rep.GeneratedAt.Unix(),
			})
			if err != nil {
				log.Printf("failed to publish search event: %v", err)
			}
		}()
	}

	if s.notifier != nil {
		go s.notifier.SearchCompleted(rep)
	}

	c.JSON(http.StatusOK, rep)
}
