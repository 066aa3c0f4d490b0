// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tomtom215/spark/internal/logging"
	"github.com/tomtom215/spark/internal/models"
)

// Twitch endpoints and bounds.
const (
	DefaultTwitchAPIBase  = "https://api.twitch.tv/helix"
	DefaultTwitchTokenURL = "https://id.twitch.tv/oauth2/token"

	twitchDefaultResults = 20
	twitchMaxResults     = 100

	// tokenRefreshMargin renews app tokens this long before they expire.
	tokenRefreshMargin = 5 * time.Minute
)

// TwitchConfig configures the Twitch source.
type TwitchConfig struct {
	ClientID     string
	ClientSecret string

	// APIBase and TokenURL override the Helix and OAuth endpoints.
	APIBase  string
	TokenURL string

	// Timeout bounds each HTTP request. Default DefaultTimeout.
	Timeout time.Duration

	Logger *zerolog.Logger
}

// Stream is a live stream as returned to API callers.
type Stream struct {
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	ViewerCount int64  `json:"viewerCount"`
	ChannelName string `json:"channelName"`
	Platform    string `json:"platform"`
	StreamID    string `json:"streamId"`
	GameName    string `json:"gameName"`
	StartedAt   string `json:"startedAt"`
}

// helixStream is one entry of the Helix streams response.
type helixStream struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	GameName     string `json:"game_name"`
	Title        string `json:"title"`
	ViewerCount  int64  `json:"viewer_count"`
	StartedAt    string `json:"started_at"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type helixGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type helixResponse[T any] struct {
	Data []T `json:"data"`
}

// Twitch fetches live streams from the Helix API.
type Twitch struct {
	clientID string
	apiBase  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTwitch creates the Twitch source. Missing credentials return
// ErrNotConfigured.
func NewTwitch(ctx context.Context, cfg TwitchConfig) (*Twitch, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("twitch: %w", ErrNotConfigured)
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultTwitchAPIBase
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTwitchTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := &http.Client{Timeout: cfg.Timeout}
	tokenCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, base)

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokens := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(tokenCtx), tokenRefreshMargin)

	client := oauth2.NewClient(tokenCtx, tokens)
	client.Timeout = cfg.Timeout

	logger := logging.WithComponent("twitch")
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "twitch").Logger()
	}

	return &Twitch{
		clientID: cfg.ClientID,
		apiBase:  strings.TrimSuffix(cfg.APIBase, "/"),
		client:   client,
		logger:   logger,
	}, nil
}

// Name implements Source.
func (t *Twitch) Name() string { return string(models.PlatformTwitch) }

// Fetch implements Source. Game, or else Category, selects the game.
// Helix cursors are not exposed, so pages never continue.
func (t *Twitch) Fetch(ctx context.Context, q Query) (Page, error) {
	game := q.Game
	if game == "" {
		game = q.Category
	}

	streams, err := t.TopStreams(ctx, game, q.MaxResults)
	if err != nil {
		return Page{}, err
	}

	page := Page{Videos: make([]models.Video, 0, len(streams)), Category: q.Category}
	for _, s := range streams {
		page.Videos = append(page.Videos, models.Video{
			ID:            s.StreamID,
			Title:         s.Title,
			Channel:       s.ChannelName,
			Thumbnail:     s.Thumbnail,
			ViewCount:     s.ViewerCount,
			PublishedAt:   s.StartedAt,
			Platform:      models.PlatformTwitch,
			Category:      q.Category,
			IsLocalArtist: isLocalArtist(s.Title, q.School),
		})
	}
	return page, nil
}

// TopStreams returns live streams for game, or the global top streams when
// game is empty. An unknown game yields no streams.
func (t *Twitch) TopStreams(ctx context.Context, game string, maxResults int) ([]Stream, error) {
	first := clampResults(maxResults, twitchDefaultResults, twitchMaxResults)
	params := url.Values{"first": {strconv.Itoa(first)}}

	if game != "" {
		id, err := t.gameID(ctx, game)
		if err != nil {
			return nil, err
		}
		if id == "" {
			t.logger.Debug().Str("game", game).Msg("Game not found")
			return []Stream{}, nil
		}
		params.Set("game_id", id)
	}

	var resp helixResponse[helixStream]
	if err := t.get(ctx, "/streams", params, &resp); err != nil {
		return nil, fmt.Errorf("twitch streams request failed: %w", err)
	}

	out := make([]Stream, 0, len(resp.Data))
	for _, s := range resp.Data {
		out = append(out, Stream{
			Title:       s.Title,
			Thumbnail:   formatThumbnail(s.ThumbnailURL),
			ViewerCount: s.ViewerCount,
			ChannelName: s.UserName,
			Platform:    string(models.PlatformTwitch),
			StreamID:    s.ID,
			GameName:    s.GameName,
			StartedAt:   s.StartedAt,
		})
	}
	return out, nil
}

func (t *Twitch) gameID(ctx context.Context, name string) (string, error) {
	var resp helixResponse[helixGame]
	if err := t.get(ctx, "/games", url.Values{"name": {name}}, &resp); err != nil {
		return "", fmt.Errorf("twitch games request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	return resp.Data[0].ID, nil
}

func (t *Twitch) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.apiBase+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", t.clientID)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// formatThumbnail fills the Helix thumbnail size placeholders.
func formatThumbnail(u string) string {
	if u == "" {
		return ""
	}
	return strings.NewReplacer("{width}", "320", "{height}", "180").Replace(u)
}
