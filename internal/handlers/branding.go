package handlers

import (
	"github.com/gofiber/fiber/v3"

	"nzpt/internal/config"
)

// BrandingData contains site branding information for templates.
type BrandingData struct {
	SiteTitle     string
	SiteTagline   string
	SiteAuthor    string
	SiteBanner    string
	TwitterHandle string
	GitHubURL     string
	ContactURL    string
	ContactEmail  string
	AnalyticsID   string
	BaseURL       string
}

// GetBrandingData returns branding data from config for template rendering.
func GetBrandingData(cfg *config.Config) BrandingData {
	return BrandingData{
		SiteTitle:     cfg.SiteTitle,
		SiteTagline:   cfg.SiteTagline,
		SiteAuthor:    cfg.SiteAuthor,
		SiteBanner:    cfg.SiteBanner,
		TwitterHandle: cfg.TwitterHandle,
		GitHubURL:     cfg.GitHubURL,
		ContactURL:    cfg.ContactURL,
		ContactEmail:  cfg.ContactEmail,
		AnalyticsID:   cfg.AnalyticsID,
		BaseURL:       cfg.BaseURL,
	}
}

// MergeBranding adds branding data to a fiber.Map for template rendering.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	branding := GetBrandingData(cfg)
	data["SiteTitle"] = branding.SiteTitle
	data["Heading"] = branding.SiteTagline
	data["SiteAuthor"] = branding.SiteAuthor
	data["SiteBanner"] = branding.SiteBanner
	data["TwitterHandle"] = branding.TwitterHandle
	data["GitHubURL"] = branding.GitHubURL
	data["ContactURL"] = branding.ContactURL
	data["ContactEmail"] = branding.ContactEmail
	data["AnalyticsID"] = branding.AnalyticsID
	if _, ok := data["CanonicalURL"]; !ok {
		data["CanonicalURL"] = branding.BaseURL + "/"
	}
	return data
}
