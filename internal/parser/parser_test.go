package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moddocs/pkg/types"
)

// parseSource writes content to a temp file and runs the extractor over it.
func parseSource(t *testing.T, content string) *types.ParseResult {
	t.Helper()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.cs")
	require.NoError(t, os.WriteFile(testFile, []byte(content), 0644))

	p := New()
	result, err := p.ParseFile(testFile)
	require.NoError(t, err)
	return result
}

func TestNew(t *testing.T) {
	p := New()
	assert.NotNil(t, p)
}

func TestParseFile_NonExistentFile(t *testing.T) {
	p := New()
	_, err := p.ParseFile("/nonexistent/file.cs")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseFile_ClassDeclaration(t *testing.T) {
	result := parseSource(t, `
public class Pawn
{
}
`)

	require.Len(t, result.Types, 1)
	ti := result.Types[0]
	assert.Equal(t, "Pawn", ti.Name)
	assert.Equal(t, types.KindClass, ti.Kind)
	assert.Equal(t, types.AccessPublic, ti.AccessModifier)
	assert.Equal(t, []string{"public"}, ti.Modifiers)
	assert.Equal(t, 2, ti.Line)
}

func TestParseFile_ClassModifiersKeepSourceOrder(t *testing.T) {
	result := parseSource(t, `
internal static sealed class GenTicks
{
}
`)

	require.Len(t, result.Types, 1)
	assert.Equal(t, []string{"internal", "static", "sealed"}, result.Types[0].Modifiers)
	assert.Equal(t, types.AccessInternal, result.Types[0].AccessModifier)
}

func TestParseFile_NoAccessModifierNoType(t *testing.T) {
	result := parseSource(t, `
class Pawn
{
    public void Tick() { }
}
`)

	// A declaration lacking an access modifier is never recognized, and
	// without an open type the method line is plain code.
	assert.Empty(t, result.Types)
}

func TestParseFile_StructAndInterfaceAndEnum(t *testing.T) {
	result := parseSource(t, `
public readonly struct IntVec3
{
}

public partial interface IThingHolder
{
}

public enum Season
{
}
`)

	require.Len(t, result.Types, 3)
	assert.Equal(t, types.KindStruct, result.Types[0].Kind)
	assert.Equal(t, []string{"public", "readonly"}, result.Types[0].Modifiers)
	assert.Equal(t, types.KindInterface, result.Types[1].Kind)
	assert.Equal(t, []string{"public", "partial"}, result.Types[1].Modifiers)
	assert.Equal(t, types.KindEnum, result.Types[2].Kind)
	assert.Equal(t, []string{"public"}, result.Types[2].Modifiers)
}

func TestParseFile_Methods(t *testing.T) {
	result := parseSource(t, `
public class Thing
{
    public virtual void Tick()
    {
    }

    private static string[] SplitAll(string input)
    {
    }

    public async Task? LoadAsync()
    {
    }
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 3)

	assert.Equal(t, types.MemberMethod, members[0].Kind)
	assert.Equal(t, "Tick", members[0].Name)
	assert.Equal(t, []string{"public", "virtual"}, members[0].Modifiers)
	assert.Equal(t, "void", members[0].ReturnType)
	assert.Equal(t, "public virtual void Tick()", members[0].Signature)

	assert.Equal(t, "SplitAll", members[1].Name)
	assert.Equal(t, []string{"private", "static"}, members[1].Modifiers)
	assert.Equal(t, "string[]", members[1].ReturnType)

	assert.Equal(t, "LoadAsync", members[2].Name)
	assert.Equal(t, []string{"public", "async"}, members[2].Modifiers)
	assert.Equal(t, "Task?", members[2].ReturnType)
}

func TestParseFile_FieldExcludesConst(t *testing.T) {
	result := parseSource(t, `
public class Counter
{
    private readonly int _count;
    private const int _max = 100;
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 1)

	field := members[0]
	assert.Equal(t, types.MemberField, field.Kind)
	assert.Equal(t, "_count", field.Name)
	assert.Equal(t, []string{"private", "readonly"}, field.Modifiers)
	assert.Equal(t, "int", field.ReturnType)
	assert.Equal(t, 4, field.Line)
}

func TestParseFile_Properties(t *testing.T) {
	result := parseSource(t, `
public class Pawn
{
    public string Label { get; set; }
    protected override bool Spawned { get { return true; } }
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 2)

	assert.Equal(t, types.MemberProperty, members[0].Kind)
	assert.Equal(t, "Label", members[0].Name)
	assert.Equal(t, "string", members[0].ReturnType)

	assert.Equal(t, "Spawned", members[1].Name)
	assert.Equal(t, []string{"protected", "override"}, members[1].Modifiers)
}

func TestParseFile_Events(t *testing.T) {
	result := parseSource(t, `
public class Map
{
    public event MapChangedHandler MapChanged;
    internal static event Action TickStarted;
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 2)

	assert.Equal(t, types.MemberEvent, members[0].Kind)
	assert.Equal(t, "MapChanged", members[0].Name)
	assert.Equal(t, "MapChangedHandler", members[0].ReturnType)

	assert.Equal(t, "TickStarted", members[1].Name)
	assert.Equal(t, []string{"internal", "static"}, members[1].Modifiers)
}

func TestParseFile_Constructor(t *testing.T) {
	result := parseSource(t, `
public class Pawn
{
    public Pawn()
    {
    }

    internal static Pawn(bool warm)
    {
    }
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 2)

	assert.Equal(t, types.MemberConstructor, members[0].Kind)
	assert.Equal(t, "Pawn", members[0].Name)
	assert.Equal(t, []string{"public"}, members[0].Modifiers)
	assert.Empty(t, members[0].ReturnType)

	assert.Equal(t, []string{"internal", "static"}, members[1].Modifiers)
}

func TestParseFile_ConstructorNameMismatchYieldsNothing(t *testing.T) {
	// `public Bar()` inside Foo is not a constructor (name mismatch) and not
	// a method either (no return type token before the identifier).
	result := parseSource(t, `
public class Foo
{
    public Bar()
    {
    }
}
`)

	require.Len(t, result.Types, 1)
	assert.Empty(t, result.Types[0].Members)
}

func TestParseFile_InterfaceMembersImplicitlyPublic(t *testing.T) {
	result := parseSource(t, `
public interface IFoo
{
    string Name { get; }
    void Notify(string message);
    event Action Changed;
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 3)

	prop := members[0]
	assert.Equal(t, types.MemberProperty, prop.Kind)
	assert.Equal(t, "Name", prop.Name)
	assert.Equal(t, types.AccessPublic, prop.AccessModifier)
	assert.Equal(t, []string{"public"}, prop.Modifiers)

	method := members[1]
	assert.Equal(t, types.MemberMethod, method.Kind)
	assert.Equal(t, "Notify", method.Name)
	assert.Equal(t, "void", method.ReturnType)
	assert.Equal(t, types.AccessPublic, method.AccessModifier)

	event := members[2]
	assert.Equal(t, types.MemberEvent, event.Kind)
	assert.Equal(t, "Changed", event.Name)
	assert.Equal(t, "Action", event.ReturnType)
}

func TestParseFile_EnumValues(t *testing.T) {
	result := parseSource(t, `
public enum Color
{
    Red,
    Green = 2,
    Blue
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 3)

	names := []string{members[0].Name, members[1].Name, members[2].Name}
	assert.Equal(t, []string{"Red", "Green", "Blue"}, names)

	for _, m := range members {
		assert.Equal(t, types.MemberEnumValue, m.Kind)
		assert.Equal(t, types.AccessPublic, m.AccessModifier)
		assert.Empty(t, m.ReturnType)
	}
}

func TestParseFile_CommentStripping(t *testing.T) {
	result := parseSource(t, `
public class Thing // main thing type
{
    public void Tick() // called every frame
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 1)
	assert.Equal(t, "public void Tick()", members[0].Signature)
}

func TestParseFile_CommentOnlyLineSkipped(t *testing.T) {
	// A line that is all comment does not update brace depth.
	result := parseSource(t, `
public class Thing
{ // opening brace counts, comment does not
    public void Tick()
    // { this brace is stripped before counting
}
`)

	require.Len(t, result.Types, 1)
	assert.Len(t, result.Types[0].Members, 1)
}

func TestParseFile_MembersRequireOpenBody(t *testing.T) {
	// Before the opening brace the depth is zero, so no members attach.
	result := parseSource(t, `
public void Orphan()

public class Late
{
    public void Inside()
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 1)
	assert.Equal(t, "Inside", members[0].Name)
}

func TestParseFile_NestedTypeReplacesCurrent(t *testing.T) {
	// A nested declaration silently becomes the current type; following
	// members attach to it, not to the outer type.
	result := parseSource(t, `
public class Outer
{
    public void OuterMethod()

    public class Inner
    {
        public void InnerMethod()
    }
}
`)

	require.Len(t, result.Types, 2)
	outer := result.Types[0]
	inner := result.Types[1]

	require.Len(t, outer.Members, 1)
	assert.Equal(t, "OuterMethod", outer.Members[0].Name)

	require.Len(t, inner.Members, 1)
	assert.Equal(t, "InnerMethod", inner.Members[0].Name)
}

func TestParseFile_MultipleTypesPerFile(t *testing.T) {
	result := parseSource(t, `
public class First
{
    public void A()
}

internal enum Second
{
    One,
    Two
}
`)

	require.Len(t, result.Types, 2)
	assert.Equal(t, "First", result.Types[0].Name)
	assert.Len(t, result.Types[0].Members, 1)
	assert.Equal(t, "Second", result.Types[1].Name)
	assert.Len(t, result.Types[1].Members, 2)
}

func TestParseFile_PlainCodeLinesYieldNothing(t *testing.T) {
	result := parseSource(t, `
public class Worker
{
    public void Run()
    {
        var total = a + b;
        if (total > 10)
        {
            Log.Message("big");
        }
    }
}
`)

	require.Len(t, result.Types, 1)
	members := result.Types[0].Members
	require.Len(t, members, 1)
	assert.Equal(t, "Run", members[0].Name)
}

func TestParseFile_EmptyFile(t *testing.T) {
	result := parseSource(t, "")
	assert.Empty(t, result.Types)
	assert.False(t, result.HasErrors())
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "public class Foo", stripComment("  public class Foo // doc"))
	assert.Equal(t, "", stripComment("// only a comment"))
	assert.Equal(t, "", stripComment("   "))
	// The first // wins even inside a string literal; accepted limitation.
	assert.Equal(t, `var s = "http:`, stripComment(`var s = "http://example.com";`))
}
