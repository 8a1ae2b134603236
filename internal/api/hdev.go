package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"valorant-sync/internal/config"
	"valorant-sync/internal/constants"

	"github.com/valyala/fasthttp"
)

// ErrUpstreamStatus matches any response whose envelope status is not 200.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

type HDevClient struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Bucket    string `json:"bucket"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewHDevClient(cfg *config.Config) *HDevClient {
	return NewHDevClientWithDial(cfg.HDevBaseURL, cfg.HDevAPIKey, nil)
}

// NewHDevClientWithDial builds a client whose connections come from dial.
// A nil dial uses fasthttp's default dialer.
func NewHDevClientWithDial(baseURL, apiKey string, dial fasthttp.DialFunc) *HDevClient {
	return &HDevClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:        100,
			ReadTimeout:            10 * time.Second,
			WriteTimeout:           10 * time.Second,
			MaxIdleConnDuration:    1 * time.Minute,
			DisablePathNormalizing: true, // keep %2F escaped inside name/tag segments
			Dial:                   dial,
		},
		rateLimit: RateLimitInfo{
			Limit:     30,
			Remaining: 30,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *HDevClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *HDevClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if bucket := string(resp.Header.Peek("X-Ratelimit-Bucket")); bucket != "" {
		c.rateLimit.Bucket = bucket
	}
	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *HDevClient) GetAccount(ctx context.Context, name, tag string) (*AccountData, error) {
	u := fmt.Sprintf("%s/valorant/v1/account/%s/%s", c.baseURL, url.PathEscape(name), url.PathEscape(tag))
	return doRequest[AccountData](ctx, c, u)
}

func (c *HDevClient) GetMMR(ctx context.Context, region, name, tag string) (*MMRData, error) {
	u := fmt.Sprintf("%s/valorant/v2/mmr/%s/%s/%s", c.baseURL, url.PathEscape(region), url.PathEscape(name), url.PathEscape(tag))
	return doRequest[MMRData](ctx, c, u)
}

func (c *HDevClient) GetMatches(ctx context.Context, region, name, tag string, size int) ([]Match, error) {
	u := fmt.Sprintf("%s/valorant/v3/matches/%s/%s/%s?mode=%s&size=%d",
		c.baseURL, url.PathEscape(region), url.PathEscape(name), url.PathEscape(tag), constants.CompetitiveMode, size)
	matches, err := doRequest[[]Match](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *matches, nil
}

func doRequest[T any](ctx context.Context, client *HDevClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if client.apiKey != "" {
		req.Header.Set("Authorization", client.apiKey)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	// the envelope status decides success; henrikdev mirrors it in the body
	// even when the transport status disagrees
	var env Envelope[T]
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode response (http %d): %w", resp.StatusCode(), err)
	}
	if env.Status != fasthttp.StatusOK {
		return nil, &StatusError{Status: env.Status, HTTPStatus: resp.StatusCode(), Errors: env.Errors}
	}
	return &env.Data, nil
}

type Envelope[T any] struct {
	Status int        `json:"status"`
	Data   T          `json:"data"`
	Errors []APIError `json:"errors,omitempty"`
}

type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Details string `json:"details"`
}

type StatusError struct {
	Status     int
	HTTPStatus int
	Errors     []APIError
}

func (e *StatusError) Error() string {
	if len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return fmt.Sprintf("API error: status %d: %s", e.Status, e.Errors[0].Message)
	}
	return fmt.Sprintf("API error: status %d", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

type AccountData struct {
	Puuid        string      `json:"puuid"`
	Region       string      `json:"region"`
	AccountLevel int         `json:"account_level"`
	Name         string      `json:"name"`
	Tag          string      `json:"tag"`
	Card         AccountCard `json:"card"`
	LastUpdate   string      `json:"last_update"`
}

type AccountCard struct {
	ID    string `json:"id"`
	Small string `json:"small"`
	Large string `json:"large"`
	Wide  string `json:"wide"`
}

type MMRData struct {
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Puuid       string `json:"puuid"`
	CurrentData struct {
		CurrentTier         int    `json:"currenttier"`
		CurrentTierPatched  string `json:"currenttierpatched"`
		RankingInTier       int    `json:"ranking_in_tier"`
		MmrChangeToLastGame int    `json:"mmr_change_to_last_game"`
		Elo                 int    `json:"elo"`
	} `json:"current_data"`
}

type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Players  struct {
		AllPlayers []MatchPlayer `json:"all_players"`
	} `json:"players"`
	// keyed by lower-cased team id ("red", "blue"); blocks may be null
	Teams map[string]*MatchTeam `json:"teams"`
}

type MatchMetadata struct {
	MatchID      string `json:"matchid"`
	Map          string `json:"map"`
	Mode         string `json:"mode"`
	Region       string `json:"region"`
	Cluster      string `json:"cluster"`
	RoundsPlayed int    `json:"rounds_played"`
	GameStart    int64  `json:"game_start"`
}

type MatchPlayer struct {
	Puuid     string `json:"puuid"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Team      string `json:"team"`
	Character string `json:"character"`
	Stats     struct {
		Score   int `json:"score"`
		Kills   int `json:"kills"`
		Deaths  int `json:"deaths"`
		Assists int `json:"assists"`
	} `json:"stats"`
}

type MatchTeam struct {
	HasWon     bool `json:"has_won"`
	RoundsWon  int  `json:"rounds_won"`
	RoundsLost int  `json:"rounds_lost"`
}
