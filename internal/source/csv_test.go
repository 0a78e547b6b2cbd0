package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

const sampleCSV = "\ufeffMã đơn hàng,Thời gian tạo đơn,Mã mặt hàng,Tên mặt hàng,Mã nhóm hàng,Tên nhóm hàng,Thành tiền\n" +
	"O1,2024-01-01 09:00:00,A,Apple,G1,Fruit,100\n" +
	",,,,,,\n" +
	"O2,2024-01-02 10:00:00,B,Banana\n"

func TestParseCSV(t *testing.T) {
	rows, header, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.ColumnOrderID, header[0], "byte order mark stripped")
	assert.Empty(t, MissingColumns(header))
	require.Len(t, rows, 2, "blank rows skipped")
	assert.Equal(t, "100", rows[0][domain.ColumnAmount])

	amount, ok := rows[1][domain.ColumnAmount]
	assert.True(t, ok, "short rows padded")
	assert.Empty(t, amount)
}

func TestParseCSVEmpty(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidDataset)
}

func TestMissingColumns(t *testing.T) {
	missing := MissingColumns([]string{domain.ColumnOrderID, domain.ColumnAmount})
	assert.Contains(t, missing, domain.ColumnCreatedAt)
	assert.NotContains(t, missing, domain.ColumnAmount)
}

func newTestCSVSource(url string, retries int) *CSVSource {
	return NewCSVSource(CSVOptions{
		URL:        url,
		Timeout:    time.Second,
		MaxRetries: retries,
		RetryMin:   time.Millisecond,
		RetryMax:   5 * time.Millisecond,
	}, nil)
}

func TestCSVSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	rows, err := newTestCSVSource(srv.URL, 0).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCSVSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	rows, err := newTestCSVSource(srv.URL, 3).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCSVSourceGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestCSVSource(srv.URL, 2).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestCSVSourceClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestCSVSource(srv.URL, 3).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCSVSourceCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewCSVSource(CSVOptions{
		URL:        srv.URL,
		MaxRetries: 5,
		RetryMin:   time.Hour,
		RetryMax:   time.Hour,
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
