package http

import (
	"context"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/config"
	"github.com/fleshka4/amm-engine/internal/curve"
	"github.com/fleshka4/amm-engine/internal/service/dto"
	"github.com/fleshka4/amm-engine/internal/service/mock"
)

func serve(t *testing.T, h http.Handler, req *http.Request) (*http.Response, string) {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPingHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.NewNop())

	resp, body := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", body)
}

func TestEstimateHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	server := NewServer(mockService, config.Config{RequestTimeout: time.Second}, zap.NewNop())

	const validQuery = "/estimate?" +
		"pool=0x1234567890123456789012345678901234567890&" +
		"src=0x1234567890123456789012345678901234567891&" +
		"dst=0x1234567890123456789012345678901234567892&" +
		"src_amount=1000000000000000000"

	t.Run("success", func(t *testing.T) {
		expectedAmount := big.NewInt(1000000000000000000)
		mockService.EXPECT().
			Estimate(gomock.Any(), dto.EstimateRequest{
				Pool:      common.HexToAddress("0x1234567890123456789012345678901234567890"),
				Src:       common.HexToAddress("0x1234567890123456789012345678901234567891"),
				Dst:       common.HexToAddress("0x1234567890123456789012345678901234567892"),
				SrcAmount: big.NewInt(1000000000000000000),
			}).
			DoAndReturn(func(ctx context.Context, _ dto.EstimateRequest) (*big.Int, error) {
				_, ok := ctx.Deadline()
				require.True(t, ok)
				return expectedAmount, nil
			})

		resp, body := serve(t, server.router, httptest.NewRequest(http.MethodGet, validQuery, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		require.Equal(t, expectedAmount.String(), body)
	})

	t.Run("validation error - missing params", func(t *testing.T) {
		resp, _ := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/estimate?pool=0x123&src=0x456", nil))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation error - bad address", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodGet,
			"/estimate?"+
				"pool=invalid&"+
				"src=0x1234567890123456789012345678901234567891&"+
				"dst=0x1234567890123456789012345678901234567892&"+
				"src_amount=1000",
			nil,
		)
		resp, _ := serve(t, server.router, req)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation error - bad src_amount", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodGet,
			"/estimate?"+
				"pool=0x1234567890123456789012345678901234567890&"+
				"src=0x1234567890123456789012345678901234567891&"+
				"dst=0x1234567890123456789012345678901234567892&"+
				"src_amount=-1000",
			nil,
		)
		resp, _ := serve(t, server.router, req)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	testServiceError := func(t *testing.T, serviceError error, expectedStatusCode int) {
		mockService.EXPECT().
			Estimate(gomock.Any(), gomock.Any()).
			Return(nil, serviceError)

		resp, _ := serve(t, server.router, httptest.NewRequest(http.MethodGet, validQuery, nil))
		require.Equal(t, expectedStatusCode, resp.StatusCode)
	}

	t.Run("service error - invalid argument", func(t *testing.T) {
		testServiceError(t, errors.Wrap(apperrors.ErrInvalidArgument, "src"), http.StatusBadRequest)
	})

	t.Run("service error - insufficient liquidity", func(t *testing.T) {
		testServiceError(t, apperrors.ErrInsufficientLiquidity, http.StatusBadRequest)
	})

	t.Run("service error - pair read failed", func(t *testing.T) {
		testServiceError(t, errors.Wrap(apperrors.ErrPairRead, "RPC error"), http.StatusBadGateway)
	})

	t.Run("service error - reserves too large", func(t *testing.T) {
		testServiceError(t, apperrors.ErrCalculationFailure, http.StatusUnprocessableEntity)
	})

	t.Run("service error - unknown error", func(t *testing.T) {
		testServiceError(t, errors.New("unknown error"), http.StatusInternalServerError)
	})

	t.Run("wrong http method", func(t *testing.T) {
		resp, _ := serve(t, server.router, httptest.NewRequest(http.MethodPost, "/estimate", nil))
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestPairStateHandler(t *testing.T) {
	t.Parallel()

	pair := common.HexToAddress("0x1234567890123456789012345678901234567890")

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := mock.NewMockService(ctrl)
		mockService.EXPECT().
			PairState(gomock.Any(), pair).
			Return(dto.PoolState{TokenAAmount: 1_000, TokenBAmount: 50_000, PoolSupply: 7_000, CurveKind: curve.KindConstantProduct}, nil)

		server := NewServer(mockService, config.Config{}, zap.NewNop())
		resp, body := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/pairs/"+pair.Hex(), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.Contains(t, body, `"token_a_amount":1000`)
		require.Contains(t, body, `"pool_supply":7000`)
		require.Contains(t, body, `"curve_type":"constant_product"`)
	})

	t.Run("bad address", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.NewNop())
		resp, body := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/pairs/nope", nil))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, body, `"error"`)
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		mockService := mock.NewMockService(ctrl)
		mockService.EXPECT().
			PairState(gomock.Any(), pair).
			Return(dto.PoolState{}, errors.Wrap(apperrors.ErrPairRead, "RPC error"))

		server := NewServer(mockService, config.Config{}, zap.NewNop())
		resp, _ := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/pairs/"+pair.Hex(), nil))
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.NewNop())

	serve(t, server.router, httptest.NewRequest(http.MethodGet, "/ping", nil))

	resp, body := serve(t, server.router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `amm_http_requests_total{route="/ping",status="200"} 1`)
	require.Contains(t, body, "amm_http_request_duration_seconds")
}

func TestLogMiddleware(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	core, logs := observer.New(zap.InfoLevel)
	server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.New(core))

	serve(t, server.Handler(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(t, server.Handler(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	require.Equal(t, http.MethodGet, first["method"])
	require.Equal(t, "/ping", first["path"])
	require.EqualValues(t, http.StatusOK, first["status"])

	require.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestCORS(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{AllowedOrigins: []string{"https://example.org"}}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://example.org")
	resp, _ := serve(t, server.Handler(), req)
	require.Equal(t, "https://example.org", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, _ = serve(t, server.Handler(), req)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{
		ReadHeaderTimeout: 5 * time.Second,
		GraceTimeout:      5 * time.Second,
	}, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, "pong", strings.TrimSpace(string(body)))

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_ServeFailureStopsShutdownWatcher(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(context.Background(), ln)
	}()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the listener failed")
	}
}

func TestServer_ListenAndServeBadAddress(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	server := NewServer(mock.NewMockService(ctrl), config.Config{}, zap.NewNop())

	err := server.ListenAndServe(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
}
