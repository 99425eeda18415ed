package envid

import "testing"

func TestResolvePrefersExplicitID(t *testing.T) {
	id, ok := Resolve(Identity{ID: "env-42", Stack: "ignored", Cluster: "ignored"}, "/projects/Other/environments/other")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.ID != "env-42" || id.Stack != "" || id.Cluster != "" {
		t.Fatalf("expected bare id identity, got %#v", id)
	}
}

func TestResolveExplicitNamePair(t *testing.T) {
	id, ok := Resolve(Identity{Stack: "Acme", Cluster: "prod-1"}, "")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.Stack != "Acme" || id.Cluster != "prod-1" {
		t.Fatalf("unexpected identity %#v", id)
	}
	if id.Direct() {
		t.Fatal("expected name pair identity to not be direct")
	}
	if !id.Resolvable() {
		t.Fatal("expected name pair identity to be resolvable")
	}
}

func TestResolveQueryParameterWinsOverPath(t *testing.T) {
	id, ok := Resolve(Identity{}, "/projects/Acme/environments/prod-1?clusterId=abc123")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.ID != "abc123" {
		t.Fatalf("expected query id to win, got %#v", id)
	}
}

func TestResolveQuerySpellings(t *testing.T) {
	id, ok := Resolve(Identity{}, "/somewhere?cluster_id=xyz")
	if !ok || id.ID != "xyz" {
		t.Fatalf("expected snake_case spelling accepted, got %#v ok=%v", id, ok)
	}
	if _, ok := Resolve(Identity{}, "/somewhere?clusterId="); ok {
		t.Fatal("expected empty query value to be skipped")
	}
}

func TestResolvePathPattern(t *testing.T) {
	id, ok := Resolve(Identity{}, "/projects/Acme/environments/prod-1")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.Stack != "Acme" || id.Cluster != "prod-1" {
		t.Fatalf("unexpected identity %#v", id)
	}
}

func TestResolvePathPatternDecodesSegments(t *testing.T) {
	id, ok := Resolve(Identity{}, "/app/projects/My%20Stack/environments/east%2Fprod")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.Stack != "My Stack" || id.Cluster != "east/prod" {
		t.Fatalf("expected percent-decoded names, got %#v", id)
	}
}

func TestResolveFragmentPattern(t *testing.T) {
	id, ok := Resolve(Identity{}, "https://console.example.com/app#/projects/Acme/environments/stage?extra=1")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if id.Stack != "Acme" || id.Cluster != "stage" {
		t.Fatalf("unexpected identity %#v", id)
	}
}

func TestResolveNoContext(t *testing.T) {
	if _, ok := Resolve(Identity{}, ""); ok {
		t.Fatal("expected empty location to yield no context")
	}
	if _, ok := Resolve(Identity{}, "/dashboards/home"); ok {
		t.Fatal("expected unrelated path to yield no context")
	}
	if _, ok := Resolve(Identity{Stack: "only-stack"}, "/dashboards"); ok {
		t.Fatal("expected lone stack name to be insufficient")
	}
}

func TestResolveFailsOpenOnBadLocation(t *testing.T) {
	if _, ok := Resolve(Identity{}, "://not a url"); ok {
		t.Fatal("expected unparseable location to yield no context")
	}
	if _, ok := Resolve(Identity{}, "/projects/%zz/environments/prod"); ok {
		t.Fatal("expected undecodable segment to yield no context")
	}
}

func TestResolveIncompletePathPattern(t *testing.T) {
	if _, ok := Resolve(Identity{}, "/projects/Acme/environments"); ok {
		t.Fatal("expected truncated pattern to yield no context")
	}
	if _, ok := Resolve(Identity{}, "/projects/Acme/services/prod-1"); ok {
		t.Fatal("expected mismatched literal to yield no context")
	}
}
