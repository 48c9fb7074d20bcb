package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/users/octocat")
	h.OnResponse(ctx, "GET", "api.github.com", "/users/octocat", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/users/octocat", nil)

	s := NoopSearchHooks{}
	s.OnSearchStart(ctx, "octocat")
	s.OnSearchComplete(ctx, "octocat", time.Second, nil)
	s.OnLoadMore(ctx, "octocat", 2, 3, nil)
	s.OnSuggestions(ctx, 5, nil)
	s.OnStale(ctx, "search")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	SetSearchHooks(nil)

	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}

	Reset()
}

type testHTTPHooks struct{ NoopHTTPHooks }
type testSearchHooks struct{ NoopSearchHooks }
