// Package anilist is a small client for the AniList GraphQL API.
package anilist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/log"
	"github.com/aiko-cli/aiko/network"
	"golang.org/x/time/rate"
)

// RequestsPerMinute is AniList's documented rate limit.
const RequestsPerMinute = 90

var logger = log.Component("anilist")

// ErrUnauthenticated is returned by queries that need a token when none is set.
var ErrUnauthenticated = errors.New("anilist: not authenticated")

// GraphQLError is an error reported in the response body.
type GraphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// GraphQLErrors is the errors array of a response.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Message
	}
	return "anilist: " + strings.Join(msgs, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response[T any] struct {
	Data   T             `json:"data"`
	Errors GraphQLErrors `json:"errors"`
}

// Client sends GraphQL requests to AniList.
type Client struct {
	http     *http.Client
	endpoint string
	token    func() string
	limiter  *rate.Limiter
	media    *cacher[int, *Media]
}

// Option configures a Client.
type Option func(*Client)

// WithToken supplies the bearer token for authenticated queries.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// WithEndpoint points the client at another GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithLimiter replaces the default rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMediaCache keeps GetByID results in c.
func WithMediaCache(path string) Option {
	return func(c *Client) { c.media = newMediaCacher(path) }
}

// New returns a client for the public Anilist GraphQL endpoint.
func New(client *http.Client, opts ...Option) *Client {
	c := &Client{
		http:     client,
		endpoint: constant.AnilistGraphQL,
		token:    func() string { return "" },
		limiter:  rate.NewLimiter(rate.Every(time.Minute/RequestsPerMinute), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether a token is available.
func (c *Client) Authenticated() bool {
	return c.bearer() != ""
}

// bearer drops anything after the first '&', which the implicit grant
// fragment may leave attached to the token.
func (c *Client) bearer() string {
	token, _, _ := strings.Cut(c.token(), "&")
	return token
}

func query[T any](ctx context.Context, c *Client, q string, vars map[string]any, auth bool) (T, error) {
	var zero T

	var headers []network.Header
	if auth {
		token := c.bearer()
		if token == "" {
			return zero, ErrUnauthenticated
		}
		headers = append(headers, network.WithBearer(token))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return zero, err
	}

	res, err := network.PostJSON[response[T]](ctx, c.http, c.endpoint, request{Query: q, Variables: vars}, headers...)
	if err != nil {
		return zero, fmt.Errorf("anilist: %w", err)
	}
	if len(res.Errors) > 0 {
		return zero, res.Errors
	}
	return res.Data, nil
}
