package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_EscapesStringLeaves(t *testing.T) {
	payload := map[string]interface{}{
		"requirements": "<script>alert('x')</script>",
		"quantity":     float64(3),
		"wholesale":    true,
	}

	out := Map(payload)
	require.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", out["requirements"])
	require.Equal(t, float64(3), out["quantity"])
	require.Equal(t, true, out["wholesale"])
}

func TestMap_RecursesIntoNestedStructures(t *testing.T) {
	payload := map[string]interface{}{
		"service_entries": []interface{}{
			map[string]interface{}{
				"description": "<b>Çim ekimi</b>",
				"unit_price":  float64(1500),
			},
			"<i>not</i>",
		},
	}

	out := Map(payload)
	entries := out["service_entries"].([]interface{})
	entry := entries[0].(map[string]interface{})
	require.Equal(t, "&lt;b&gt;Çim ekimi&lt;/b&gt;", entry["description"])
	require.Equal(t, float64(1500), entry["unit_price"])
	require.Equal(t, "&lt;i&gt;not&lt;/i&gt;", entries[1])
}

// Orijinal payload değişmemeli; çıktı derin kopyadır.
func TestMap_DoesNotMutateInput(t *testing.T) {
	inner := map[string]interface{}{"description": "<b>x</b>"}
	payload := map[string]interface{}{
		"service_entries": []interface{}{inner},
	}

	Map(payload)
	require.Equal(t, "<b>x</b>", inner["description"])
}

func TestMap_NilPayload(t *testing.T) {
	require.Nil(t, Map(nil))
}

func TestValue_PlainStringsUntouched(t *testing.T) {
	require.Equal(t, "sade metin", Value("sade metin"))
	require.Nil(t, Value(nil))
}
