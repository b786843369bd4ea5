package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/propline/prop-engine/internal/models"
	"github.com/propline/prop-engine/internal/services"
)

// SportsDataIOProvider fetches live NFL data from the SportsDataIO API.
// Responses are cached in redis and every endpoint call goes through its
// circuit breaker and a shared rate limit.
type SportsDataIOProvider struct {
	client    *http.Client
	cache     *services.CacheService
	breaker   *services.CircuitBreakerService
	logger    *logrus.Logger
	apiKey    string
	baseURL   string
	rateLimit *RateLimiter
}

// NewSportsDataIOProvider creates the live data source.
func NewSportsDataIOProvider(
	apiKey string,
	timeout time.Duration,
	cache *services.CacheService,
	breaker *services.CircuitBreakerService,
	logger *logrus.Logger,
) *SportsDataIOProvider {
	return &SportsDataIOProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		cache:     cache,
		breaker:   breaker,
		logger:    logger,
		apiKey:    apiKey,
		baseURL:   "https://api.sportsdata.io/v3/nfl",
		rateLimit: NewRateLimiter(60, time.Minute), // free tier allowance
	}
}

// Raw payload shapes from the API.

type depthChartEntry struct {
	Position     string `json:"Position"`
	Name         string `json:"Name"`
	DepthOrder   int    `json:"DepthOrder"`
	PositionCode string `json:"PositionCategory"`
}

type usageEntry struct {
	Name           string  `json:"Name"`
	SnapPct        float64 `json:"SnapPercentage"`
	RushAttempts   int     `json:"RushingAttempts"`
	Targets        int     `json:"Targets"`
	RedZoneRushes  int     `json:"RedZoneAttempts"`
	RedZoneTargets int     `json:"RedZoneTargets"`
}

type matchupEntry struct {
	PassYardsProj float64 `json:"PassingYardsProjection"`
	RushYardsProj float64 `json:"RushingYardsProjection"`
	EliteRunD     bool    `json:"OpponentEliteRunDefense"`
	WR1EliteCB    bool    `json:"OpponentEliteCornerback"`
	PassRushEdge  bool    `json:"OpponentPassRushEdge"`
	IsDivisional  bool    `json:"DivisionGame"`
}

type weatherEntry struct {
	WindSpeed     int    `json:"WindSpeed"`
	ForecastShort string `json:"ForecastDescription"`
}

type newsArticle struct {
	Title   string   `json:"Title"`
	Content string   `json:"Content"`
	Players []string `json:"PlayerNames"`
}

// DepthChart implements engine.DataSource.
func (p *SportsDataIOProvider) DepthChart(ctx context.Context, team string, week int) (models.DepthChart, error) {
	var chart models.DepthChart
	cacheKey := p.cache.TeamWeekKey("depth_chart", team, week)
	if err := p.cache.Get(ctx, cacheKey, &chart); err == nil {
		return chart, nil
	}

	var entries []depthChartEntry
	if err := p.fetch(ctx, "depth_chart", p.endpoint("scores/json/DepthCharts", team), &entries); err != nil {
		return nil, err
	}

	chart = make(models.DepthChart)
	for _, e := range entries {
		pos := models.Position(e.Position)
		switch pos {
		case models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE:
			chart[pos] = append(chart[pos], e.Name)
		}
	}
	// DepthOrder is ascending in the payload; entries arrive sorted, so
	// append preserves rank.

	p.cacheSet(ctx, cacheKey, chart, services.DepthChartTTL)
	return chart, nil
}

// RecentUsage implements engine.DataSource.
func (p *SportsDataIOProvider) RecentUsage(ctx context.Context, team string, week int) (map[string]models.RoleUsage, error) {
	var usage map[string]models.RoleUsage
	cacheKey := p.cache.TeamWeekKey("recent_usage", team, week)
	if err := p.cache.Get(ctx, cacheKey, &usage); err == nil {
		return usage, nil
	}

	var entries []usageEntry
	if err := p.fetch(ctx, "recent_usage", p.endpoint(fmt.Sprintf("stats/json/PlayerGameStatsByTeam/%d", week), team), &entries); err != nil {
		return nil, err
	}

	usage = make(map[string]models.RoleUsage, len(entries))
	for _, e := range entries {
		usage[e.Name] = models.RoleUsage{
			SnapPct: e.SnapPct / 100.0,
			RushAtt: e.RushAttempts,
			Targets: e.Targets,
			RZRush:  e.RedZoneRushes,
			RZTgt:   e.RedZoneTargets,
		}
	}

	p.cacheSet(ctx, cacheKey, usage, services.UsageTTL)
	return usage, nil
}

// NewsFlags implements engine.DataSource. Flags are derived from recent
// RotoBaller articles: a player mentioned alongside positive or negative
// keywords gets an arrow. Any fetch failure means no flags rather than an
// error, matching the optional-news behavior of the upstream feed.
func (p *SportsDataIOProvider) NewsFlags(ctx context.Context, team string, week int) (map[string]models.NewsFlag, error) {
	var flags map[string]models.NewsFlag
	cacheKey := p.cache.TeamWeekKey("news_flags", team, week)
	if err := p.cache.Get(ctx, cacheKey, &flags); err == nil {
		return flags, nil
	}

	var articles []newsArticle
	date := time.Now().Format("2006-01-02")
	if err := p.fetch(ctx, "news_flags", p.endpoint("articles-rotoballer/json/RotoBallerArticlesByDate/"+date, ""), &articles); err != nil {
		p.logger.WithError(err).Warn("News fetch failed, continuing without flags")
		return map[string]models.NewsFlag{}, nil
	}

	flags = make(map[string]models.NewsFlag)
	for _, article := range articles {
		flag := classifyArticle(article)
		if flag == models.NewsFlagNone {
			continue
		}
		for _, player := range article.Players {
			flags[player] = flag
		}
	}

	p.cacheSet(ctx, cacheKey, flags, services.NewsFlagTTL)
	return flags, nil
}

// MatchupMetrics implements engine.DataSource.
func (p *SportsDataIOProvider) MatchupMetrics(ctx context.Context, team string, week int) (models.MatchupMetrics, error) {
	var metrics models.MatchupMetrics
	cacheKey := p.cache.TeamWeekKey("matchup_metrics", team, week)
	if err := p.cache.Get(ctx, cacheKey, &metrics); err == nil {
		return metrics, nil
	}

	var entry matchupEntry
	if err := p.fetch(ctx, "matchup_metrics", p.endpoint(fmt.Sprintf("projections/json/TeamGameProjections/%d", week), team), &entry); err != nil {
		return models.MatchupMetrics{}, err
	}

	metrics = models.MatchupMetrics{
		TeamPassYardsProj: entry.PassYardsProj,
		TeamRushYardsProj: entry.RushYardsProj,
		EliteRunD:         entry.EliteRunD,
		WR1VsEliteCB:      entry.WR1EliteCB,
		PassRushEdge:      entry.PassRushEdge,
		IsDivisional:      entry.IsDivisional,
	}

	p.cacheSet(ctx, cacheKey, metrics, services.MatchupTTL)
	return metrics, nil
}

// Weather implements engine.DataSource.
func (p *SportsDataIOProvider) Weather(ctx context.Context, team string, week int) (models.GameWeather, error) {
	var weather models.GameWeather
	cacheKey := p.cache.TeamWeekKey("weather", team, week)
	if err := p.cache.Get(ctx, cacheKey, &weather); err == nil {
		return weather, nil
	}

	var entry weatherEntry
	if err := p.fetch(ctx, "weather", p.endpoint(fmt.Sprintf("scores/json/GameWeatherForecast/%d", week), team), &entry); err != nil {
		return models.GameWeather{}, err
	}

	forecast := strings.ToLower(entry.ForecastShort)
	weather = models.GameWeather{
		WindMPH: entry.WindSpeed,
		Precip:  strings.Contains(forecast, "rain") || strings.Contains(forecast, "snow") || strings.Contains(forecast, "showers"),
	}

	p.cacheSet(ctx, cacheKey, weather, services.WeatherTTL)
	return weather, nil
}

// endpoint builds an authenticated API URL; team is appended as a path
// segment when present.
func (p *SportsDataIOProvider) endpoint(path, team string) string {
	u := fmt.Sprintf("%s/%s", p.baseURL, path)
	if team != "" {
		u += "/" + url.PathEscape(team)
	}
	return fmt.Sprintf("%s?key=%s", u, url.QueryEscape(p.apiKey))
}

// fetch performs a rate-limited, breaker-protected GET and decodes the
// JSON payload into dest.
func (p *SportsDataIOProvider) fetch(ctx context.Context, endpointName, apiURL string, dest interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("SportsDataIO API key not configured")
	}
	if !p.rateLimit.Allow() {
		return fmt.Errorf("SportsDataIO rate limit exceeded")
	}

	_, err := p.breaker.Execute(endpointName, func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", endpointName, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s endpoint returned status %d", endpointName, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s response: %w", endpointName, err)
		}
		if err := json.Unmarshal(body, dest); err != nil {
			return nil, fmt.Errorf("failed to parse %s response: %w", endpointName, err)
		}
		return nil, nil
	})
	return err
}

// cacheSet stores a response, logging rather than failing on cache errors.
func (p *SportsDataIOProvider) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := p.cache.Set(ctx, key, value, ttl); err != nil {
		p.logger.WithError(err).WithField("key", key).Warn("Failed to cache upstream response")
	}
}

// classifyArticle maps article text to a news arrow with a keyword
// heuristic.
func classifyArticle(article newsArticle) models.NewsFlag {
	text := strings.ToLower(article.Title + " " + article.Content)
	positive := []string{"returns", "activated", "full practice", "cleared", "expected to play", "breakout"}
	negative := []string{"injury", "questionable", "doubtful", "out for", "limited", "ruled out", "benched"}

	for _, kw := range negative {
		if strings.Contains(text, kw) {
			return models.NewsFlagDown
		}
	}
	for _, kw := range positive {
		if strings.Contains(text, kw) {
			return models.NewsFlagUp
		}
	}
	return models.NewsFlagNone
}
