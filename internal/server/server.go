// Package server exposes the extraction pipelines over a small JSON API.
// Handlers stay thin: validation and HTTP status mapping here, everything
// else in the pipeline packages.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobsift/jobsift/internal/assist"
	"github.com/jobsift/jobsift/internal/document"
	"github.com/jobsift/jobsift/internal/scrape"
	"github.com/jobsift/jobsift/internal/search"
)

// PostingExtractor extracts job details from a posting URL.
type PostingExtractor interface {
	Extract(ctx context.Context, url string) scrape.Posting
}

// Searcher runs bulk aggregated searches.
type Searcher interface {
	Search(ctx context.Context, q search.Query) search.Outcome
}

// Assistant is the optional LLM capability.
type Assistant interface {
	Available() bool
	CustomizeCV(ctx context.Context, cvText, jobDescription, jobTitle, company string) (string, error)
	CoverLetter(ctx context.Context, cvText, jobDescription, jobTitle, company, userName string) (string, error)
	ResearchCompany(ctx context.Context, company, jobTitle string) (assist.CompanyResearch, error)
}

// Server wires the pipeline services into HTTP handlers.
type Server struct {
	Scraper PostingExtractor
	Files   *document.Processor
	Search  Searcher
	Assist  Assistant
	// UserID namespaces uploads until real accounts exist.
	UserID int
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/scrape", s.handleScrape)
	api.POST("/search", s.handleSearch)
	api.POST("/cvs", s.handleUpload)
	api.GET("/cvs", s.handleListCVs)
	api.GET("/cvs/:filename", s.handleCVText)
	api.POST("/customize", s.handleCustomize)
	api.POST("/cover-letter", s.handleCoverLetter)
	api.POST("/research", s.handleResearch)
	return r
}

func (s *Server) userID() int {
	if s.UserID > 0 {
		return s.UserID
	}
	return 1
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No URL provided"})
		return
	}
	// Extract never fails; a broken fetch shows up in the job's error field.
	job := s.Scraper.Extract(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "job_info": job})
}

type searchRequest struct {
	Site     string `json:"site"`
	Term     string `json:"term"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a search term"})
		return
	}
	out := s.Search.Search(c.Request.Context(), search.Query{
		Site:     req.Site,
		Term:     req.Term,
		Location: req.Location,
		Limit:    req.Limit,
	})
	if !out.Available {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job search service not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out.Jobs), "jobs": out.Jobs})
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("cv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload: " + err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload: " + err.Error()})
		return
	}

	path, text, err := s.Files.SaveUpload(data, fh.Filename, s.userID())
	switch {
	case errors.Is(err, document.ErrEmptyFilename), errors.Is(err, document.ErrFileType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"filepath": path, "cv_text": text})
}

func (s *Server) handleListCVs(c *gin.Context) {
	cvs := s.Files.ListCVs(s.userID())
	if cvs == nil {
		cvs = []document.CVFile{}
	}
	c.JSON(http.StatusOK, gin.H{"cvs": cvs})
}

func (s *Server) handleCVText(c *gin.Context) {
	text, err := s.Files.TextByFilename(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Could not extract CV text"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cv_text": text})
}

type customizeRequest struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	JobID          int    `json:"job_id"`
	UserName       string `json:"user_name"`
}

func (s *Server) handleCustomize(c *gin.Context) {
	var req customizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CVText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CV content provided"})
		return
	}
	if !s.Assist.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not available"})
		return
	}
	text, err := s.Assist.CustomizeCV(c.Request.Context(), req.CVText, req.JobDescription, req.JobTitle, req.Company)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CV customization failed: " + err.Error()})
		return
	}
	path, err := s.Files.SaveCustomizedCV(text, req.JobID, s.userID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save customized CV: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customized_cv": text, "cv_path": path})
}

func (s *Server) handleCoverLetter(c *gin.Context) {
	var req customizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CVText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CV content provided"})
		return
	}
	if !s.Assist.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not available"})
		return
	}
	text, err := s.Assist.CoverLetter(c.Request.Context(), req.CVText, req.JobDescription, req.JobTitle, req.Company, req.UserName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cover letter generation failed: " + err.Error()})
		return
	}
	path, err := s.Files.SaveCoverLetter(text, req.JobID, s.userID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover letter: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_letter": text, "letter_path": path})
}

type researchRequest struct {
	Company  string `json:"company"`
	JobTitle string `json:"job_title"`
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No company name provided"})
		return
	}
	if !s.Assist.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not available"})
		return
	}
	res, err := s.Assist.ResearchCompany(c.Request.Context(), req.Company, req.JobTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Company research failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"research": res})
}
