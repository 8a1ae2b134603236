package api

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *HDevClient {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() {
		_ = srv.Shutdown()
		_ = ln.Close()
	})

	return NewHDevClientWithDial("http://hdev.test/", "test-key", func(addr string) (net.Conn, error) {
		return ln.Dial()
	})
}

func TestGetAccount(t *testing.T) {
	var gotPath, gotAuth string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Request.URI().PathOriginal())
		gotAuth = string(ctx.Request.Header.Peek("Authorization"))
		ctx.Response.Header.Set("X-Ratelimit-Remaining", "29")
		ctx.Response.Header.Set("X-Ratelimit-Limit", "30")
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":200,"data":{"puuid":"p1","region":"na","name":"TenZ","tag":"0505","account_level":150,"card":{"small":"https://cdn/small.png"}}}`)
	})

	acc, err := client.GetAccount(context.Background(), "TenZ", "0505")
	require.NoError(t, err)

	assert.Equal(t, "/valorant/v1/account/TenZ/0505", gotPath)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "p1", acc.Puuid)
	assert.Equal(t, "na", acc.Region)
	assert.Equal(t, 150, acc.AccountLevel)
	assert.Equal(t, "https://cdn/small.png", acc.Card.Small)

	rl := client.GetRateLimitInfo()
	assert.Equal(t, 29, rl.Remaining)
	assert.Equal(t, 30, rl.Limit)
}

func TestGetAccount_EscapesPathSegments(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Request.URI().PathOriginal())
		ctx.SetBodyString(`{"status":200,"data":{"puuid":"p2"}}`)
	})

	_, err := client.GetAccount(context.Background(), "Big Name", "EU/1")
	require.NoError(t, err)
	assert.Equal(t, "/valorant/v1/account/Big%20Name/EU%2F1", gotPath)
}

func TestEnvelopeStatusDecidesSuccess(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		body       string
		wantStatus bool
		wantErr    bool
	}{
		{
			name:       "envelope 404 with transport 200",
			httpStatus: fasthttp.StatusOK,
			body:       `{"status":404,"errors":[{"message":"Account not found","code":22}]}`,
			wantStatus: true,
			wantErr:    true,
		},
		{
			name:       "envelope 200 with transport 500",
			httpStatus: fasthttp.StatusInternalServerError,
			body:       `{"status":200,"data":{"puuid":"p1"}}`,
		},
		{
			name:       "undecodable body",
			httpStatus: fasthttp.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantErr:    true,
		},
		{
			name:       "missing status field",
			httpStatus: fasthttp.StatusOK,
			body:       `{"data":{"puuid":"p1"}}`,
			wantStatus: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
				ctx.SetStatusCode(tt.httpStatus)
				ctx.SetBodyString(tt.body)
			})

			acc, err := client.GetAccount(context.Background(), "a", "b")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "p1", acc.Puuid)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, errors.Is(err, ErrUpstreamStatus))
		})
	}
}

func TestGetMMR(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Request.URI().PathOriginal())
		ctx.SetBodyString(`{"status":200,"data":{"current_data":{"currenttierpatched":"Radiant","elo":450}}}`)
	})

	mmr, err := client.GetMMR(context.Background(), "na", "TenZ", "0505")
	require.NoError(t, err)
	assert.Equal(t, "/valorant/v2/mmr/na/TenZ/0505", gotPath)
	assert.Equal(t, "Radiant", mmr.CurrentData.CurrentTierPatched)
	assert.Equal(t, 450, mmr.CurrentData.Elo)
}

func TestGetMatches(t *testing.T) {
	var gotPath, gotMode, gotSize string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Request.URI().PathOriginal())
		gotMode = string(ctx.QueryArgs().Peek("mode"))
		gotSize = string(ctx.QueryArgs().Peek("size"))
		ctx.SetBodyString(`{"status":200,"data":[
			{"players":{"all_players":[{"puuid":"p1","team":"Red","stats":{"kills":20,"deaths":10}}]},
			 "teams":{"red":{"has_won":true,"rounds_won":13,"rounds_lost":8},"blue":null}},
			{"players":{"all_players":[]},"teams":null}
		]}`)
	})

	matches, err := client.GetMatches(context.Background(), "na", "TenZ", "0505", 5)
	require.NoError(t, err)

	assert.Equal(t, "/valorant/v3/matches/na/TenZ/0505", gotPath)
	assert.Equal(t, "competitive", gotMode)
	assert.Equal(t, "5", gotSize)
	require.Len(t, matches, 2)

	first := matches[0]
	require.Len(t, first.Players.AllPlayers, 1)
	assert.Equal(t, 20, first.Players.AllPlayers[0].Stats.Kills)
	require.NotNil(t, first.Teams["red"])
	assert.True(t, first.Teams["red"].HasWon)
	assert.Nil(t, first.Teams["blue"])
	assert.Nil(t, matches[1].Teams)
}

func TestDoRequest_HonoursCancelledContext(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"status":200,"data":{}}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetAccount(ctx, "a", "b")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDoRequest_DeadlineExceeded(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(200 * time.Millisecond)
		ctx.SetBodyString(`{"status":200,"data":{}}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetAccount(ctx, "a", "b")
	require.Error(t, err)
}
