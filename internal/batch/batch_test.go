package batch

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/identify"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
)

// outlineDetector marks bright pixels next to a dark 4-neighbour.
type outlineDetector struct {
	src   image.Image
	edges *image.Gray
}

func (d *outlineDetector) SetSourceImage(img image.Image) { d.src = img }

func (d *outlineDetector) Process() error {
	b := d.src.Bounds()
	bright := func(x, y int) bool {
		return color.GrayModel.Convert(d.src.At(x, y)).(color.Gray).Y > 128
	}
	d.edges = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !bright(x, y) {
				continue
			}
			for _, n := range []image.Point{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if n.In(b) && !bright(n.X, n.Y) {
					d.edges.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
					break
				}
			}
		}
	}
	return nil
}

func (d *outlineDetector) EdgesImage() image.Image { return d.edges }

// writeScan writes a 600x300 dark PNG with a white rectangle whose top left
// corner is (x0, y0) and whose size is 200x100.
func writeScan(t *testing.T, path string, x0, y0 int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 600; x++ {
			c := color.RGBA{20, 20, 20, 255}
			if x >= x0 && x <= x0+200 && y >= y0 && y <= y0+100 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func scanDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeScan(t, filepath.Join(dir, "a.png"), 100, 50)
	writeScan(t, filepath.Join(dir, "b.png"), 102, 52)
	writeScan(t, filepath.Join(dir, "c.png"), 104, 50)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	return dir
}

func testRunner(s Settings, opts ...RunnerOption) *Runner {
	opts = append(opts, WithIdentifyOptions(
		identify.WithEdgeDetector(&outlineDetector{}),
		identify.WithMorphology(imaging.NewNone()),
	))
	return NewRunner(s, opts...)
}

func TestCollect(t *testing.T) {
	dir := scanDir(t)

	t.Run("directory", func(t *testing.T) {
		files, got, err := Collect(dir, DefaultFileFilter)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
		require.Len(t, files, 4)
		assert.Equal(t, "a.png", filepath.Base(files[0]))
		assert.Equal(t, "bad.png", filepath.Base(files[2]))
	})

	t.Run("custom filter", func(t *testing.T) {
		files, _, err := Collect(dir, []string{".TXT"})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "notes.txt", filepath.Base(files[0]))
	})

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(dir, "b.png")
		files, got, err := Collect(path, DefaultFileFilter)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
		assert.Equal(t, dir, got)
	})

	t.Run("single file not matching", func(t *testing.T) {
		files, _, err := Collect(filepath.Join(dir, "notes.txt"), DefaultFileFilter)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := Collect(filepath.Join(dir, "nope"), DefaultFileFilter)
		assert.Error(t, err)
	})
}

func TestRunner_Simple(t *testing.T) {
	dir := scanDir(t)

	type step struct {
		done, total int
		found       bool
	}
	var steps []step
	r := testRunner(DefaultSettings(), WithProgress(func(done, total int, doc *document.Document) {
		steps = append(steps, step{done, total, doc != nil})
	}))

	rep, err := r.RunPath(context.Background(), dir)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, dir, rep.Dir)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "bad.png", filepath.Base(rep.Failures[0].Path))

	require.Len(t, rep.Raw, 3)
	assert.InDelta(t, 200, rep.Raw[0].X, 1)
	assert.InDelta(t, 202, rep.Raw[1].X, 1)
	assert.InDelta(t, 204, rep.Raw[2].X, 1)

	require.True(t, rep.Corrected)
	require.Len(t, rep.Documents, 3)
	for i, d := range rep.Documents {
		assert.InDelta(t, 202, d.X, 1)
		assert.InDelta(t, 100, d.Y, 1)
		assert.InDelta(t, 200, d.Width, 1)
		assert.InDelta(t, 100, d.Height, 1)
		assert.Equal(t, rep.Raw[i].ID, d.ID)
	}

	assert.Equal(t, []step{{1, 4, true}, {2, 4, true}, {3, 4, false}, {4, 4, true}}, steps)
}

func TestRunner_ComplexKeepsRaw(t *testing.T) {
	s := DefaultSettings()
	s.Behavior = Complex
	rep, err := testRunner(s).RunPath(context.Background(), scanDir(t))
	require.NoError(t, err)
	assert.False(t, rep.Corrected)
	assert.Equal(t, rep.Raw, rep.Documents)
}

func TestRunner_Padding(t *testing.T) {
	s := DefaultSettings()
	s.PaddingWidth = 20
	s.PaddingHeight = 500
	dir := t.TempDir()
	writeScan(t, filepath.Join(dir, "one.png"), 100, 50)

	rep, err := testRunner(s).RunPath(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Documents, 1)
	assert.False(t, rep.Corrected)
	assert.InDelta(t, 220, rep.Documents[0].Width, 1)
	assert.InDelta(t, 199, rep.Documents[0].Height, 1)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testRunner(DefaultSettings()).RunPath(ctx, scanDir(t))
	assert.True(t, errors.Is(err, identify.ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	r := testRunner(DefaultSettings(), WithProgress(func(done, total int, doc *document.Document) {
		calls++
		cancel()
	}))
	_, err := r.RunPath(ctx, scanDir(t))
	assert.ErrorIs(t, err, identify.ErrCancelled)
	assert.Equal(t, 1, calls)
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	rep := &Report{Documents: []*document.Document{
		{ID: "a.png", X: 200, Y: 100, Width: 200, Height: 100},
		{ID: "b.png", X: 202, Y: 101, Width: 198, Height: 99, Rotation: 1.5},
	}}

	path, err := WriteReport(rep, dir, document.SimplePrinter{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OutputFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a.png\t200\t100\t200\t100\t0.00", lines[0])
	assert.Equal(t, "b.png\t202\t101\t198\t99\t1.50", lines[1])
}

func TestParseSettingsEnums(t *testing.T) {
	typ, err := ParseDocumentType("double_page")
	require.NoError(t, err)
	assert.Equal(t, DoublePage, typ)
	assert.Equal(t, "DOUBLE_PAGE", typ.String())

	b, err := ParseBehavior("COMPLEX")
	require.NoError(t, err)
	assert.Equal(t, Complex, b)

	_, err = ParseBehavior("weird")
	assert.ErrorIs(t, err, document.ErrInvalidArgument)
	_, err = ParseDocumentType("triple")
	assert.ErrorIs(t, err, document.ErrInvalidArgument)
}
