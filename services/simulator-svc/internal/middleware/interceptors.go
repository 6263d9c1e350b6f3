package middleware

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"

	"trafficsim/pkg/config"
	"trafficsim/pkg/logger"
	"trafficsim/pkg/metrics"
	"trafficsim/pkg/ratelimit"
	"trafficsim/pkg/token"
)

// NewRecoveryInterceptor перехватывает паники handler'ов
func NewRecoveryInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (resp connect.AnyResponse, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Log.Error("Panic recovered",
						"request_id", GetRequestID(ctx),
						"method", req.Spec().Procedure,
						"panic", r,
					)
					err = connect.NewError(connect.CodeInternal, fmt.Errorf("internal server error"))
				}
			}()

			return next(ctx, req)
		}
	}
}

// NewLoggingInterceptor логирует запросы
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Генерируем request ID
			requestID := GenerateRequestID()
			ctx = WithRequestID(ctx, requestID)

			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start)

			if err != nil {
				logger.Log.Error("Request failed",
					"request_id", requestID,
					"method", procedure,
					"duration_ms", duration.Milliseconds(),
					"error", err,
				)
			} else {
				logger.Log.Info("Request completed",
					"request_id", requestID,
					"method", procedure,
					"duration_ms", duration.Milliseconds(),
				)
			}

			return resp, err
		}
	}
}

// NewAuthInterceptor проверяет JWT токены. Расчётные endpoint'ы публичные,
// история и отчёты требуют bearer токен.
func NewAuthInterceptor(manager *token.JWTManager, publicMethods map[string]bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure

			// Пропускаем публичные методы
			if publicMethods[procedure] {
				return next(ctx, req)
			}

			raw := req.Header().Get("Authorization")
			if raw == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("missing authorization header"))
			}

			// Убираем "Bearer " prefix
			if len(raw) > 7 && raw[:7] == "Bearer " {
				raw = raw[7:]
			}

			claims, err := manager.ValidateToken(raw)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("invalid token"))
			}

			ctx = WithUserID(ctx, claims.UserID)
			ctx = WithUserRole(ctx, claims.Role)

			return next(ctx, req)
		}
	}
}

// NewRateLimitInterceptor ограничивает частоту запросов
func NewRateLimitInterceptor(cfg config.RateLimitConfig) connect.UnaryInterceptorFunc {
	if !cfg.Enabled {
		return func(next connect.UnaryFunc) connect.UnaryFunc {
			return next
		}
	}

	limiter, err := ratelimit.New(&ratelimit.Config{
		Requests:        cfg.Requests,
		Window:          cfg.Window,
		Backend:         cfg.Backend,
		CleanupInterval: cfg.CleanupInterval,
		RedisAddr:       cfg.RedisAddr,
	})
	if err != nil {
		logger.Log.Warn("Failed to create rate limiter", "error", err)
		return func(next connect.UnaryFunc) connect.UnaryFunc {
			return next
		}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Ключ по user_id или IP
			key := GetUserID(ctx)
			if key == "" {
				key = req.Peer().Addr
			}

			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.Log.Warn("Rate limit check failed", "error", err)
				return next(ctx, req)
			}

			if !allowed {
				return nil, connect.NewError(
					connect.CodeResourceExhausted,
					fmt.Errorf("rate limit exceeded"),
				)
			}

			return next(ctx, req)
		}
	}
}

// NewMetricsInterceptor собирает метрики
func NewMetricsInterceptor() connect.UnaryInterceptorFunc {
	m := metrics.Get()

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			duration := time.Since(start)
			status := "OK"
			if err != nil {
				status = connect.CodeOf(err).String()
			}

			m.RecordRequest(req.Spec().Procedure, status, duration)

			return resp, err
		}
	}
}
