package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/pressdex/internal/db"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockIndexReader struct {
	err error
}

func (m *mockIndexReader) Info(_ context.Context) (*db.IndexInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &db.IndexInfo{}, nil
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockIndexReader{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("Status = %q, want %q", r.Status, Healthy)
	}
	if r.Checks["engine"] != CheckOK || r.Checks["index"] != CheckOK {
		t.Errorf("Checks = %v", r.Checks)
	}
}

func TestCheck_EngineDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockIndexReader{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("Status = %q, want %q", r.Status, Unhealthy)
	}
	if r.Checks["engine"] != CheckError {
		t.Errorf("Checks = %v", r.Checks)
	}
}

func TestCheck_IndexMissing(t *testing.T) {
	svc := New(&mockPinger{}, &mockIndexReader{err: errors.New("unknown index name")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("Status = %q, want %q", r.Status, Degraded)
	}
	if r.Checks["engine"] != CheckOK || r.Checks["index"] != CheckError {
		t.Errorf("Checks = %v", r.Checks)
	}
}
