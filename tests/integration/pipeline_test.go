package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moddocs/internal/indexer"
	"moddocs/internal/linker"
	"moddocs/internal/storage"
	"moddocs/pkg/types"
)

// A miniature game installation: C# assembly sources plus XML definition
// and language files.
func writeInstallation(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"Assembly-CSharp/Building_Turret.cs": `using System;

namespace Game
{
    public class Building_Turret
    {
        private int burstCooldown;

        public Building_Turret()
        {
        }

        public override void Tick()
        {
            // fire control handled per burst
        }

        public string InspectString {
            get { return "TurretIdle".Translate(this.def.label); }
        }
    }

    public class CompPowerTrader
    {
        public void PowerOn()
        {
        }
    }
}
`,
		"Assembly-CSharp/Defs.cs": `namespace Game
{
    public enum QualityCategory
    {
        Awful,
        Normal,
        Legendary = 6
    }

    public interface IAttackTarget
    {
        bool ThreatDisabled();
    }
}
`,
		"Data/Defs/Buildings.xml": `<Defs>
  <ThingDef>
    <defName>Turret_Mini</defName>
    <label>mini turret</label>
    <thingClass>Building_Turret</thingClass>
    <comps>
      <compClass>CompPowerTrader</compClass>
    </comps>
  </ThingDef>
</Defs>
`,
		"Data/Languages/Keys.xml": `<LanguageData>
  <key>TurretIdle</key>
  <text>{0} is idle.</text>
</LanguageData>
`,
	}
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestFullPipeline(t *testing.T) {
	root := writeInstallation(t)
	ctx := context.Background()

	// Stage 1: scan the source tree and write the docs index
	idx := indexer.New(nil)
	index, stats, err := idx.Scan(ctx, root, &indexer.Config{Quiet: true})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 4, index.TotalTypes)
	assert.Equal(t, 2, index.TypeCounts["class"])
	assert.Equal(t, 1, index.TypeCounts["interface"])
	assert.Equal(t, 1, index.TypeCounts["enum"])

	indexPath := filepath.Join(root, indexer.DefaultIndexFile)
	require.NoError(t, indexer.WriteIndex(index, indexPath))

	loaded, err := types.LoadDocIndex(indexPath)
	require.NoError(t, err)

	// Stage 2: link XML class references against the index
	xl := linker.NewXMLClassLinker()
	xl.Quiet = true
	classReport, err := xl.Link(ctx, loaded, filepath.Join(root, "Data"))
	require.NoError(t, err)

	assert.Equal(t, 2, classReport.TotalLinks)
	assert.Equal(t, 2, classReport.UniqueClasses)
	require.Contains(t, classReport.TagGroups, "thingClass")
	assert.Equal(t, "Building_Turret", classReport.TagGroups["thingClass"][0].Class)
	assert.Contains(t, classReport.TagGroups["thingClass"][0].ClassFile, "Building_Turret.cs")

	// Stage 3: link translation call sites against XML keys
	tl := linker.NewTranslationLinker()
	tl.Quiet = true
	transReport, err := tl.Link(ctx, filepath.Join(root, "Assembly-CSharp"), filepath.Join(root, "Data"))
	require.NoError(t, err)

	assert.Equal(t, 1, transReport.TotalTranslateCalls)
	require.Contains(t, transReport.TranslationLinks, "TurretIdle")
	assert.Empty(t, transReport.UnlinkedCalls)
}

func TestScanIdempotence(t *testing.T) {
	root := writeInstallation(t)
	ctx := context.Background()
	idx := indexer.New(nil)

	first, _, err := idx.Scan(ctx, root, &indexer.Config{Quiet: true})
	require.NoError(t, err)
	second, _, err := idx.Scan(ctx, root, &indexer.Config{Quiet: true})
	require.NoError(t, err)

	// Byte-identical apart from the timestamp
	first.GeneratedAt = ""
	second.GeneratedAt = ""
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestPipelineWithPersistence(t *testing.T) {
	root := writeInstallation(t)
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "moddocs.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer store.Close()

	idx := indexer.New(store)
	_, _, err = idx.Scan(ctx, root, &indexer.Config{Quiet: true})
	require.NoError(t, err)

	rec, err := store.GetTypeByName(ctx, "Building_Turret")
	require.NoError(t, err)
	assert.Equal(t, "class", rec.Kind)

	results, err := store.SearchTypes(ctx, "Building*", []string{"class"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Building_Turret", results[0].Name)
}
