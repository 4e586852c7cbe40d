package output

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/renderix/deckhand/internal/plugin"
)

func TestMockSink(t *testing.T) {
	t.Run("records emitted keys in order", func(t *testing.T) {
		sink := NewMockSink()

		for _, key := range []string{"d", "g", "g"} {
			if err := sink.Emit(key); err != nil {
				t.Fatalf("Emit(%q) failed: %v", key, err)
			}
		}

		keys := sink.Keys()
		if len(keys) != 3 || keys[0] != "d" || keys[1] != "g" || keys[2] != "g" {
			t.Errorf("unexpected key sequence: %v", keys)
		}
	})

	t.Run("configured error is returned and key not recorded", func(t *testing.T) {
		sink := NewMockSink()
		wantErr := errors.New("injection rejected")
		sink.SetError(wantErr)

		if err := sink.Emit("d"); err != wantErr {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if len(sink.Keys()) != 0 {
			t.Errorf("expected no recorded keys, got %v", sink.Keys())
		}
	})

	t.Run("implements Sink interface", func(t *testing.T) {
		var _ Sink = (*MockSink)(nil)
		var _ Sink = LogSink{}
		var _ Sink = (*PluginSink)(nil)
	})
}

func TestPluginSink_Emit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	keyboardDir := filepath.Join(tmpDir, "keyboard")
	if err := os.MkdirAll(keyboardDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	script := `#!/bin/sh
cat > request.json
echo '{"success":true}'
`
	if err := os.WriteFile(filepath.Join(keyboardDir, "keyboard.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	manifest := `{"name":"keyboard","version":"1.0.0","executable":"keyboard.sh","actions":["keystroke"]}`
	if err := os.WriteFile(filepath.Join(keyboardDir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manager := plugin.NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	sink := NewPluginSink(manager, plugin.NewExecutor(5*time.Second), "keyboard")
	if err := sink.Emit("d"); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	// The plugin wrote the request it received; verify the key went through.
	data, err := os.ReadFile(filepath.Join(keyboardDir, "request.json"))
	if err != nil {
		t.Fatalf("read captured request: %v", err)
	}
	if !strings.Contains(string(data), `"key":"d"`) {
		t.Errorf("expected request to carry key 'd', got %s", data)
	}
}

func TestPluginSink_Emit_PluginMissing(t *testing.T) {
	manager := plugin.NewManager(t.TempDir())
	sink := NewPluginSink(manager, plugin.NewExecutor(time.Second), "keyboard")

	if err := sink.Emit("d"); err == nil {
		t.Fatal("expected error for missing plugin")
	}
}

func TestPluginSink_Emit_Rejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	keyboardDir := filepath.Join(tmpDir, "keyboard")
	if err := os.MkdirAll(keyboardDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	script := `#!/bin/sh
echo '{"success":false,"error":"no accessibility permission"}'
`
	if err := os.WriteFile(filepath.Join(keyboardDir, "keyboard.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	manifest := `{"name":"keyboard","version":"1.0.0","executable":"keyboard.sh","actions":["keystroke"]}`
	if err := os.WriteFile(filepath.Join(keyboardDir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manager := plugin.NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	sink := NewPluginSink(manager, plugin.NewExecutor(5*time.Second), "keyboard")
	err := sink.Emit("d")
	if err == nil {
		t.Fatal("expected error for rejected emission")
	}
	if !strings.Contains(err.Error(), "no accessibility permission") {
		t.Errorf("expected plugin error in message, got %v", err)
	}
}
