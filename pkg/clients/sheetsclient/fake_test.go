package sheetsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeSheets serves the subset of the Sheets v4 REST API the client uses, backed by memory
type fakeSheets struct {
	mu     sync.Mutex
	titles []string
	tabs   map[string][][]interface{}
	calls  []string
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{tabs: map[string][][]interface{}{}}
}

func (f *fakeSheets) addTab(title string, rows [][]interface{}) {
	f.titles = append(f.titles, title)
	f.tabs[title] = rows
}

// tabName strips any A1 range from a range string
func tabName(sheetRange string) string {
	name, _, _ := strings.Cut(sheetRange, "!")
	return name
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")
	f.calls = append(f.calls, r.Method+" "+path)

	write := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	readValues := func() [][]interface{} {
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		return body.Values
	}

	id, rest, hasRest := strings.Cut(path, "/values/")
	switch {
	case !hasRest && strings.HasSuffix(id, ":batchUpdate"):
		var body struct {
			Requests []struct {
				AddSheet struct {
					Properties struct {
						Title string `json:"title"`
					} `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		title := body.Requests[0].AddSheet.Properties.Title
		f.addTab(title, nil)
		write(map[string]any{"replies": []any{map[string]any{
			"addSheet": map[string]any{"properties": map[string]any{"title": title, "sheetId": len(f.titles)}},
		}}})

	case !hasRest:
		sheets := make([]any, len(f.titles))
		for i, t := range f.titles {
			sheets[i] = map[string]any{"properties": map[string]any{"title": t, "sheetId": i}}
		}
		write(map[string]any{"spreadsheetId": id, "sheets": sheets})

	case strings.HasSuffix(rest, ":clear"):
		f.tabs[tabName(strings.TrimSuffix(rest, ":clear"))] = nil
		write(map[string]any{})

	case strings.HasSuffix(rest, ":append"):
		tab := tabName(strings.TrimSuffix(rest, ":append"))
		f.tabs[tab] = append(f.tabs[tab], readValues()...)
		write(map[string]any{})

	case r.Method == http.MethodPut:
		f.tabs[tabName(rest)] = readValues()
		write(map[string]any{})

	default:
		rows, ok := f.tabs[tabName(rest)]
		if !ok {
			http.Error(w, `{"error":{"code":400,"message":"Unable to parse range"}}`, http.StatusBadRequest)
			return
		}
		write(map[string]any{"range": rest, "values": rows})
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClientWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return client
}
