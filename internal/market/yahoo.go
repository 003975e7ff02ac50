package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	chartPath     = "/v8/finance/chart/{symbol}"
	chartInterval = "1d"
)

// Provider fetches the price history and metadata of a single symbol.
// Implementations return errors matching apperr.ErrNotFound or apperr.ErrUpstream.
type Provider interface {
	History(ctx context.Context, symbol string, period Period) (*Quote, error)
}

// YahooClient is a client for the Yahoo Finance chart API.
// It implements the Provider interface.
type YahooClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure YahooClient implements the interface
var _ Provider = (*YahooClient)(nil)

// NewYahooClient creates a new chart API client.
func NewYahooClient(cfg *config.Market, logger *zap.Logger) *YahooClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	// rate.Limit is requests per second; zero or less disables throttling.
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	return &YahooClient{
		client:  client,
		logger:  logger.Named("yahoo"),
		limiter: rate.NewLimiter(limit, burst),
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol               string              `json:"symbol"`
		Currency             string              `json:"currency"`
		ExchangeName         string              `json:"exchangeName"`
		FullExchangeName     string              `json:"fullExchangeName"`
		InstrumentType       string              `json:"instrumentType"`
		LongName             string              `json:"longName"`
		ShortName            string              `json:"shortName"`
		RegularMarketPrice   decimal.NullDecimal `json:"regularMarketPrice"`
		PreviousClose        decimal.NullDecimal `json:"previousClose"`
		ChartPreviousClose   decimal.NullDecimal `json:"chartPreviousClose"`
		RegularMarketDayHigh decimal.NullDecimal `json:"regularMarketDayHigh"`
		RegularMarketDayLow  decimal.NullDecimal `json:"regularMarketDayLow"`
		RegularMarketVolume  int64               `json:"regularMarketVolume"`
		FiftyTwoWeekHigh     decimal.NullDecimal `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow      decimal.NullDecimal `json:"fiftyTwoWeekLow"`
		MarketCap            decimal.NullDecimal `json:"marketCap"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []decimal.NullDecimal `json:"open"`
			High   []decimal.NullDecimal `json:"high"`
			Low    []decimal.NullDecimal `json:"low"`
			Close  []decimal.NullDecimal `json:"close"`
			Volume []*int64              `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// doRequest executes a single attempt, waiting on the rate limiter first.
// Transport failures and 5xx/429 responses are upstream errors; a 404 means
// the provider does not know the symbol.
func (c *YahooClient) doRequest(ctx context.Context, symbol, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Upstream("rate limiter wait", err)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url), zap.String("symbol", symbol))
	resp, err := req.SetContext(ctx).Execute(method, url)
	if err != nil {
		return nil, apperr.Upstream("request "+symbol, err)
	}
	if !resp.IsError() {
		return resp, nil
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, apperr.NotFound("symbol", symbol)
	}
	if e, ok := resp.Error().(*chartResponse); ok && e.Chart.Error != nil && e.Chart.Error.Code == "Not Found" {
		return nil, apperr.NotFound("symbol", symbol)
	}
	return nil, apperr.Upstream("request "+symbol, fmt.Errorf("status %s: %s", resp.Status(), resp.String()))
}

// History fetches daily bars for symbol over period together with its metadata.
func (c *YahooClient) History(ctx context.Context, symbol string, period Period) (*Quote, error) {
	req := c.client.R().
		SetPathParam("symbol", symbol).
		SetQueryParam("range", string(period)).
		SetQueryParam("interval", chartInterval).
		SetQueryParam("includePrePost", "false").
		SetResult(&chartResponse{}).
		SetError(&chartResponse{})

	resp, err := c.doRequest(ctx, symbol, http.MethodGet, chartPath, req)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			c.logger.Warn("Failed to fetch chart", zap.String("symbol", symbol), zap.Error(err))
		}
		return nil, err
	}

	result := resp.Result().(*chartResponse)
	if result.Chart.Error != nil {
		return nil, apperr.NotFound("symbol", symbol)
	}
	if len(result.Chart.Result) == 0 {
		return nil, apperr.NotFound("symbol", symbol)
	}
	quote := normalizeChart(symbol, period, &result.Chart.Result[0])
	if len(quote.Bars) == 0 {
		return nil, apperr.NotFound("symbol", symbol)
	}
	return quote, nil
}

func normalizeChart(symbol string, period Period, r *chartResult) *Quote {
	m := r.Meta
	name := m.LongName
	if name == "" {
		name = m.ShortName
	}
	if name == "" {
		name = symbol
	}
	exchange := m.FullExchangeName
	if exchange == "" {
		exchange = m.ExchangeName
	}
	prevClose := m.PreviousClose
	if !prevClose.Valid {
		prevClose = m.ChartPreviousClose
	}

	q := &Quote{
		Symbol: symbol,
		Period: period,
		Meta: Metadata{
			Symbol:           symbol,
			Name:             name,
			Currency:         m.Currency,
			Exchange:         exchange,
			InstrumentType:   m.InstrumentType,
			CurrentPrice:     m.RegularMarketPrice,
			PreviousClose:    prevClose,
			DayHigh:          m.RegularMarketDayHigh,
			DayLow:           m.RegularMarketDayLow,
			Volume:           m.RegularMarketVolume,
			FiftyTwoWeekHigh: m.FiftyTwoWeekHigh,
			FiftyTwoWeekLow:  m.FiftyTwoWeekLow,
			MarketCap:        m.MarketCap,
		},
		Bars: []Bar{},
	}
	if len(r.Indicators.Quote) == 0 {
		return q
	}

	ind := r.Indicators.Quote[0]
	at := func(xs []decimal.NullDecimal, i int) decimal.NullDecimal {
		if i < len(xs) {
			return xs[i]
		}
		return decimal.NullDecimal{}
	}
	for i, ts := range r.Timestamp {
		closePrice := at(ind.Close, i)
		// Provider pads holidays and halted sessions with nulls.
		if !closePrice.Valid {
			continue
		}
		bar := Bar{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  at(ind.Open, i).Decimal,
			High:  at(ind.High, i).Decimal,
			Low:   at(ind.Low, i).Decimal,
			Close: closePrice.Decimal,
		}
		if i < len(ind.Volume) && ind.Volume[i] != nil {
			bar.Volume = *ind.Volume[i]
		}
		q.Bars = append(q.Bars, bar)
	}
	return q
}
