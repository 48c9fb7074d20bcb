// Package pkg provides the libraries behind octoscope, a terminal client for
// looking up GitHub users and browsing their repositories.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [github] - REST client, profile and repository fetches, user search
//  2. [search] - the search session: suggestions, submit, load-more
//  3. [debounce] - trailing-edge debouncer used for suggestions
//  4. [errors] - error codes and the messages shown to users
//  5. [config], [prefs] - configuration file and saved theme
//  6. [httputil], [observability], [buildinfo] - retry, hooks, version
//
// # Architecture
//
// A keystroke or a submitted username flows through the session:
//
//	UI shell (TUI or command)
//	         ↓
//	    [search.Session] (debounce, generations, pagination)
//	         ↓
//	    [github.Client] (one HTTP request per call, typed errors)
//	         ↓
//	    [search.Renderer] callbacks back into the UI
//
// # Quick Start
//
// Look up a user and load all of their repositories:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/octoscope/pkg/github"
//	    "github.com/matzehuels/octoscope/pkg/search"
//	)
//
//	client := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN")})
//	sess := search.New(client, nil, search.RendererFuncs{
//	    ReposLoaded: func(repos []github.RepositorySummary, appendMode bool) {
//	        for _, r := range repos {
//	            fmt.Println(r.Name)
//	        }
//	    },
//	}, search.Options{})
//
//	if err := sess.Submit(ctx, "octocat"); err != nil {
//	    return err
//	}
//	for sess.Snapshot().CanLoadMore {
//	    if err := sess.LoadMore(ctx); err != nil {
//	        return err
//	    }
//	}
//
// Errors carry a [errors.Code]; [errors.UserMessage] turns any of them into
// the single line a user should see.
package pkg
