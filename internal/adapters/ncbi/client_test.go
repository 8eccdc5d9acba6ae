package ncbi

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/logger"
)

const putResponse = `<html><!--QBlastInfoBegin
    RID = TEST-RID-1
    RTOE = 12
QBlastInfoEnd
--></html>`

const sampleXML = `<?xml version="1.0"?>
<BlastOutput>
  <BlastOutput_program>blastn</BlastOutput_program>
  <BlastOutput_iterations>
    <Iteration>
      <Iteration_iter-num>1</Iteration_iter-num>
      <Iteration_hits>
        <Hit>
          <Hit_num>1</Hit_num>
          <Hit_id>gi|2|gb|MN908947.3|</Hit_id>
          <Hit_def>Severe acute respiratory syndrome coronavirus 2 isolate Wuhan-Hu-1</Hit_def>
          <Hit_accession>MN908947</Hit_accession>
          <Hit_len>29903</Hit_len>
          <Hit_hsps>
            <Hsp>
              <Hsp_num>1</Hsp_num>
              <Hsp_bit-score>22.3</Hsp_bit-score>
              <Hsp_score>11</Hsp_score>
              <Hsp_evalue>0.15</Hsp_evalue>
              <Hsp_qseq>ATGCATGCAT</Hsp_qseq>
              <Hsp_hseq>ATGCTTGCAT</Hsp_hseq>
              <Hsp_midline>|||| |||||</Hsp_midline>
            </Hsp>
          </Hit_hsps>
        </Hit>
      </Iteration_hits>
    </Iteration>
  </BlastOutput_iterations>
</BlastOutput>`

type fakeBlast struct {
	waitingPolls int32
	finalStatus  string
	thereAreHits string
	polls        int32
	lastQuery    atomic.Value
	submittedAt  atomic.Value
	firstPollAt  atomic.Value
}

func (f *fakeBlast) handler(ctx *fasthttp.RequestCtx) {
	switch {
	case string(ctx.FormValue("CMD")) == "Put":
		f.lastQuery.Store(string(ctx.FormValue("QUERY")))
		f.submittedAt.Store(time.Now())
		ctx.SetBodyString(putResponse)
	case string(ctx.FormValue("FORMAT_OBJECT")) == "SearchInfo":
		n := atomic.AddInt32(&f.polls, 1)
		if n == 1 {
			f.firstPollAt.Store(time.Now())
		}
		if n <= f.waitingPolls {
			ctx.SetBodyString("QBlastInfoBegin\n\tStatus=WAITING\nQBlastInfoEnd")
			return
		}
		ctx.SetBodyString("QBlastInfoBegin\n\tStatus=" + f.finalStatus + "\n\tThereAreHits=" + f.thereAreHits + "\nQBlastInfoEnd")
	case string(ctx.FormValue("FORMAT_TYPE")) == "XML":
		if string(ctx.FormValue("RID")) != "TEST-RID-1" {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		ctx.SetBodyString(sampleXML)
	default:
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
	}
}

func newTestClient(t *testing.T, handler fasthttp.RequestHandler, opts ...func(*Config)) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go server.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { _ = ln.Close() })

	httpClient := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}

	config := DefaultConfig()
	config.BaseURL = "http://blast.test/Blast.cgi"
	config.PollInterval = time.Millisecond
	config.MaxPollInterval = 4 * time.Millisecond
	config.RTOEUnit = time.Microsecond
	for _, opt := range opts {
		opt(&config)
	}

	client, err := NewClient(config, httpClient, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestSearchReturnsBestHit(t *testing.T) {
	fake := &fakeBlast{waitingPolls: 2, finalStatus: "READY", thereAreHits: "yes"}
	client := newTestClient(t, fake.handler)

	hits, err := client.Search(context.Background(), "ATGCATGCAT")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}

	h := hits[0]
	if !strings.HasPrefix(h.Title, "gi|2|gb|MN908947.3| Severe acute") {
		t.Errorf("Title = %q", h.Title)
	}
	if h.Length != 29903 || h.EValue != 0.15 || h.Score != 11 {
		t.Errorf("unexpected numeric fields: %+v", h)
	}
	if h.Query != "ATGCATGCAT" || h.Subject != "ATGCTTGCAT" || h.Match != "|||| |||||" {
		t.Errorf("unexpected aligned strings: %+v", h)
	}
	if got := atomic.LoadInt32(&fake.polls); got != 3 {
		t.Errorf("polled %d times, want 3", got)
	}
	if q, _ := fake.lastQuery.Load().(string); q != "ATGCATGCAT" {
		t.Errorf("server received query %q", q)
	}
}

func TestSearchNoHits(t *testing.T) {
	fake := &fakeBlast{finalStatus: "READY", thereAreHits: "no"}
	client := newTestClient(t, fake.handler)

	hits, err := client.Search(context.Background(), "ATGC")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestSearchServerFailure(t *testing.T) {
	for _, status := range []string{"FAILED", "UNKNOWN"} {
		t.Run(status, func(t *testing.T) {
			fake := &fakeBlast{finalStatus: status}
			client := newTestClient(t, fake.handler)

			if _, err := client.Search(context.Background(), "ATGC"); err == nil {
				t.Errorf("expected error for status %s", status)
			}
		})
	}
}

func TestSearchHTTPError(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})

	_, err := client.Search(context.Background(), "ATGC")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected HTTP 503 error, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	fake := &fakeBlast{waitingPolls: 1 << 30, finalStatus: "READY"}
	client := newTestClient(t, fake.handler)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, "ATGC")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestSearchWaitsForRTOE(t *testing.T) {
	fake := &fakeBlast{finalStatus: "READY", thereAreHits: "no"}
	// RTOE = 12 in the Put response, so the first status check is due after 60ms.
	client := newTestClient(t, fake.handler, func(c *Config) {
		c.RTOEUnit = 5 * time.Millisecond
	})

	if _, err := client.Search(context.Background(), "ATGC"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	submitted, _ := fake.submittedAt.Load().(time.Time)
	firstPoll, ok := fake.firstPollAt.Load().(time.Time)
	if !ok {
		t.Fatal("status was never polled")
	}
	if waited := firstPoll.Sub(submitted); waited < 60*time.Millisecond {
		t.Errorf("first status check after %v, want at least the advertised 60ms", waited)
	}
}

func TestSearchBacksOffBetweenPolls(t *testing.T) {
	fake := &fakeBlast{waitingPolls: 3, finalStatus: "READY", thereAreHits: "no"}
	client := newTestClient(t, fake.handler, func(c *Config) {
		c.PollInterval = 10 * time.Millisecond
		c.MaxPollInterval = 20 * time.Millisecond
	})

	start := time.Now()
	if _, err := client.Search(context.Background(), "ATGC"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// Waits: 10ms (RTOE below the interval), then 10, 20, 20 capped.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("four polls finished after %v, want at least 60ms", elapsed)
	}
}

func TestDefaultPollingRespectsNCBIRate(t *testing.T) {
	c := DefaultConfig()
	if c.PollInterval < time.Minute {
		t.Errorf("default poll interval %v is below one minute", c.PollInterval)
	}
	if c.RTOEUnit != time.Second {
		t.Errorf("RTOE unit = %v, want 1s", c.RTOEUnit)
	}
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.PollInterval = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero poll interval")
	}
	c = DefaultConfig()
	c.MaxPollInterval = time.Second
	if err := c.Validate(); err == nil {
		t.Error("expected error for max poll interval below poll interval")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}
