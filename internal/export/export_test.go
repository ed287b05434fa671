package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/export"
	"github.com/vk/legcfg/modules/lite3"
	"github.com/vk/legcfg/modules/m20"
)

func encode(t *testing.T, format string, cfgs ...*config.Articulation) []byte {
	t.Helper()
	enc, err := export.ForFormat(format)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, cfgs...))
	return buf.Bytes()
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"hcl", "json", "msgpack", "schema", "table"}, export.Formats())

	enc, err := export.ForFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, "application/json", enc.ContentType())

	_, err = export.ForFormat("yaml")
	require.EqualError(t, err, `unknown format "yaml": must be one of hcl, json, msgpack, schema, table`)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("single record is an object", func(t *testing.T) {
		t.Parallel()

		// --- Act ---
		out := encode(t, "json", lite3.Config("/data"))

		// --- Assert ---
		var got config.Articulation
		require.NoError(t, jsoniter.Unmarshal(out, &got))
		if diff := cmp.Diff(lite3.Config("/data"), &got); diff != "" {
			t.Errorf("JSON output mismatch (-want +got):\n%s", diff)
		}
		require.Contains(t, string(out), `"usd_path": "/data/Lite3/Lite3_usd/Lite3.usd"`)
		require.Contains(t, string(out), `".*HipY_joint": -0.8`)
	})

	t.Run("several records are an array", func(t *testing.T) {
		t.Parallel()

		out := encode(t, "json", lite3.Config(""), m20.Config(""))

		var got []map[string]any
		require.NoError(t, jsoniter.Unmarshal(out, &got))
		require.Len(t, got, 2)
		require.Equal(t, "m20", got[1]["name"])
	})
}

func TestMsgpack_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	out := encode(t, "msgpack", m20.Config("/data"))

	var got map[string]any
	require.NoError(t, msgpack.Unmarshal(out, &got))
	require.Equal(t, "m20", got["name"])
	require.Equal(t, 0.9, got["soft_joint_pos_limit_factor"])

	actuators, ok := got["actuators"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, actuators, "wheel")

	initState, ok := got["init_state"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{0.0, 0.0, 0.52}, initState["pos"], "positions are [x, y, z] arrays")
}

func TestTable(t *testing.T) {
	t.Parallel()

	out := string(encode(t, "table", lite3.Config("/data")))

	require.Contains(t, out, "/data/Lite3/Lite3_usd/Lite3.usd")
	require.Contains(t, out, "soft_limit=0.99")
	require.Contains(t, out, ".*_Hip[X,Y]_joint")
	require.Contains(t, out, "delayed_pd")
	require.Contains(t, out, "0-5")
	require.Contains(t, strings.ToLower(out), "12 joints")
}

func TestSchema(t *testing.T) {
	t.Parallel()

	out := string(encode(t, "schema"))

	require.Contains(t, out, `"soft_joint_pos_limit_factor"`)
	require.Contains(t, out, `"dc_motor"`)
	require.Contains(t, out, `"continuous"`)
	require.Contains(t, out, `"[x, y, z] in meters"`)
	require.NotNil(t, export.Schema())
}

func TestHCL(t *testing.T) {
	t.Parallel()

	out := string(encode(t, "hcl", lite3.Config("/data")))
	require.Contains(t, out, `robot "lite3" {`)
	require.Contains(t, out, `actuator "Knee" {`)
}
