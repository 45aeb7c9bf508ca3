// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/canonical/agency-service/internal/logging"
)

var errRequestFailed = errors.New("request failed")

// TransactionMiddleware runs every mutating request in one transaction.
// The transaction is committed when the handler answers below 400 and rolled back otherwise.
// Safe methods run without a transaction.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			rw := &statusRecorder{ResponseWriter: w}

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.status() >= http.StatusBadRequest {
					return fmt.Errorf("%w with status %d", errRequestFailed, rw.status())
				}

				return nil
			})

			switch {
			case err == nil, errors.Is(err, errRequestFailed):
			case rw.written():
				// the handler already answered, the client cannot be told
				logger.Errorf("transaction of %s %s not committed: %v", r.Method, r.URL.Path, err)
			default:
				logger.Errorf("transaction of %s %s failed: %v", r.Method, r.URL.Path, err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.code == 0 {
		rw.code = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.code == 0 {
		rw.code = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *statusRecorder) written() bool {
	return rw.code != 0
}

func (rw *statusRecorder) status() int {
	if rw.code == 0 {
		return http.StatusOK
	}
	return rw.code
}
