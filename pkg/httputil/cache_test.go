package httputil

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	if err := c.Set("npm:left-pad", map[string]string{"license": "WTFPL"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got map[string]string
	ok, err := c.Get("npm:left-pad", &got)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Get() returned false for existing key")
	}
	if got["license"] != "WTFPL" {
		t.Errorf("license = %q, want WTFPL", got["license"])
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var v string
	ok, err := c.Get("missing", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	var v string
	ok, err := c.Get("key", &v)
	if ok {
		t.Error("Get() returned true for expired key")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	npm := c.Namespace("npm:")
	osv := c.Namespace("osv:")

	if err := npm.Set("lodash", "from-npm"); err != nil {
		t.Fatal(err)
	}
	if err := osv.Set("lodash", "from-osv"); err != nil {
		t.Fatal(err)
	}

	var v string
	if ok, _ := npm.Get("lodash", &v); !ok || v != "from-npm" {
		t.Errorf("npm namespace got %q, %v", v, ok)
	}
	if ok, _ := osv.Get("lodash", &v); !ok || v != "from-osv" {
		t.Errorf("osv namespace got %q, %v", v, ok)
	}
}
