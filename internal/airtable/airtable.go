// Package airtable is a minimal client for the Airtable REST API, covering
// the operations the shortlisting pipeline needs: listing records with cursor
// pagination, fetching linked child records and patching fields back.
package airtable

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.airtable.com/v0"
	userAgent = "spigell/shortlister"
	// Max value the API allows per page.
	pageSize = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	baseID     string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token, baseID string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		baseID: baseID,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Tables holds the table ids of the applicant base, keyed by role.
type Tables struct {
	Applicants        string `mapstructure:"applicants"`
	PersonalDetails   string `mapstructure:"personal-details"`
	WorkExperience    string `mapstructure:"work-experience"`
	SalaryPreferences string `mapstructure:"salary-preferences"`
	ShortlistedLeads  string `mapstructure:"shortlisted-leads"`
}
