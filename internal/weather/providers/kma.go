package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultKMABaseURL is the short-term forecast endpoint of the KMA open API.
const DefaultKMABaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getVilageFcst"

const (
	kmaPageNo    = "1"
	kmaNumOfRows = "300"
	kmaDataType  = "JSON"
)

// KMAProvider implements weather.Provider for the KMA short-term forecast API.
type KMAProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig

	// One breaker per grid cell so a failing city never trips another.
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewKMAProvider creates a provider. An empty apiKey is sent as is; the
// upstream rejects it.
func NewKMAProvider(client *http.Client, apiKey, baseURL string, backoff BackoffConfig) *KMAProvider {
	if baseURL == "" {
		baseURL = DefaultKMABaseURL
	}

	return &KMAProvider{
		name:    "kma",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// breaker returns the circuit breaker of a grid cell, creating it on first use.
func (p *KMAProvider) breaker(nx, ny int) *gobreaker.CircuitBreaker {
	key := cities.GridKey(nx, ny)

	p.mu.Lock()
	defer p.mu.Unlock()

	cb, ok := p.breakers[key]
	if !ok {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        p.name + " " + key,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
		p.breakers[key] = cb
	}
	return cb
}

func (p *KMAProvider) Name() string {
	return p.name
}

// kmaEnvelope mirrors the response shape. Pointers tell absent from empty.
type kmaEnvelope struct {
	Response *struct {
		Header *struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body *struct {
			Items *struct {
				Item []weather.ForecastRecord `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// resultMsg extracts response.header.resultMsg from a raw body, if any.
func resultMsg(body []byte) string {
	var env kmaEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Response == nil || env.Response.Header == nil {
		return ""
	}
	return env.Response.Header.ResultMsg
}

func (p *KMAProvider) query(nx, ny int, slice weather.TimeSlice) url.Values {
	values := url.Values{}
	values.Set("serviceKey", p.apiKey)
	values.Set("pageNo", kmaPageNo)
	values.Set("numOfRows", kmaNumOfRows)
	values.Set("dataType", kmaDataType)
	values.Set("base_date", slice.BaseDate)
	values.Set("base_time", slice.BaseTime)
	values.Set("nx", strconv.Itoa(nx))
	values.Set("ny", strconv.Itoa(ny))
	return values
}

func (p *KMAProvider) FetchForecast(ctx context.Context, nx, ny int, slice weather.TimeSlice) ([]weather.ForecastRecord, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", p.baseURL, p.query(nx, ny, slice).Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.breaker(nx, ny), buildRequest)
	if err != nil {
		te := &weather.TransportError{Err: err}
		var se *statusError
		if errors.As(err, &se) {
			te.Status = se.Status
			te.Message = resultMsg(se.Body)
		}
		return nil, te
	}
	defer resp.Body.Close()

	var env kmaEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrInvalidResponseFormat, err)
	}
	if env.Response == nil {
		return nil, weather.ErrInvalidResponseFormat
	}

	// Non-success responses carry no body, so the code is checked first.
	if h := env.Response.Header; h != nil && h.ResultCode != weather.SuccessCode {
		return nil, &weather.UpstreamError{Code: h.ResultCode, Message: h.ResultMsg}
	}

	if env.Response.Header == nil || env.Response.Body == nil ||
		env.Response.Body.Items == nil || env.Response.Body.Items.Item == nil {
		return nil, weather.ErrInvalidResponseFormat
	}

	return env.Response.Body.Items.Item, nil
}
