package convert_test

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/pkg/card"
	"github.com/yaklabco/mdcard/pkg/convert"
	"github.com/yaklabco/mdcard/pkg/parser/goldmark"
)

var (
	spaceBeforeTag = regexp.MustCompile(`\s*<`)
	spaceAfterTag  = regexp.MustCompile(`>\s*`)
)

// normalize removes whitespace around tags and folds self-closing void
// elements so outputs can be compared structurally.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "/>", ">")
	s = spaceBeforeTag.ReplaceAllString(s, "<")
	s = spaceAfterTag.ReplaceAllString(s, ">")
	return strings.TrimSpace(s)
}

func ptr[T any](v T) *T {
	return &v
}

// bareOptions disables the container classes so the output only carries
// classes written in the source.
func bareOptions() *card.Options {
	return &card.Options{
		ImageContainerClass:   ptr(""),
		ContentContainerClass: ptr(""),
	}
}

func convertString(t *testing.T, src string, opts *card.Options) *convert.Result {
	t.Helper()

	conv := convert.New(goldmark.FlavorCommonMark, opts)
	result, err := conv.Convert(context.Background(), "doc.md", []byte(src))
	require.NoError(t, err)
	return result
}

func TestConvert_Cards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "single-line text and image",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
Single-line text
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div>Single-line text</div></div>`,
		},
		{
			name: "class attributes",
			input: `:::card{.card.solid-border}
![image alt](https://xxxxx.xxx/yyy.jpg)
Single-line text
:::
`,
			want: `<div class="card solid-border"><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div>Single-line text</div></div>`,
		},
		{
			name: "label fills empty alt",
			input: `:::card[card alt]
![](https://xxxxx.xxx/yyy.jpg)
Single-line text
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="card alt"></div><div>Single-line text</div></div>`,
		},
		{
			name: "explicit alt wins over label",
			input: `:::card[card alt]
![image alt](https://xxxxx.xxx/yyy.jpg)
Single-line text
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div>Single-line text</div></div>`,
		},
		{
			name: "multi-line text",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
Multiple
Line
Text
:::
`,
			want: "<div><div><img src=\"https://xxxxx.xxx/yyy.jpg\" alt=\"image alt\"></div><div>Multiple\nLine\nText</div></div>",
		},
		{
			name: "strong text",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
**Strong text**
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div><strong>Strong text</strong></div></div>`,
		},
		{
			name: "emphasized text",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
_Emphasized text_
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div><em>Emphasized text</em></div></div>`,
		},
		{
			name: "link text",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
[Link text](https://xxxxx.xxx/)
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div><a href="https://xxxxx.xxx/">Link text</a></div></div>`,
		},
		{
			name: "image and image",
			input: `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
![image alt 2](https://xxxxx.xxx/zzz.jpg)
:::
`,
			want: `<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div><img src="https://xxxxx.xxx/zzz.jpg" alt="image alt 2"></div></div>`,
		},
		{
			name: "linked image",
			input: `:::card
[![image alt](https://xxxxx.xxx/yyy.jpg)](https://xxxxx.xxx/)
Single-line text
:::
`,
			want: `<div><div><a href="https://xxxxx.xxx/"><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></a></div><div>Single-line text</div></div>`,
		},
		{
			name: "no content",
			input: `:::card
:::
`,
			want: `<div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := convertString(t, tt.input, bareOptions())
			assert.Equal(t, normalize(tt.want), normalize(string(result.HTML)))
		})
	}
}

func TestConvert_IndentedInput(t *testing.T) {
	t.Parallel()

	input := `
  :::card
  ![image alt](https://xxxxx.xxx/yyy.jpg)
  Single-line text
  :::
`
	result := convertString(t, input, bareOptions())
	assert.Equal(t,
		`<div><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div>Single-line text</div></div>`,
		normalize(string(result.HTML)))
}

func TestConvert_CustomTagCard(t *testing.T) {
	t.Parallel()

	opts := bareOptions()
	opts.CustomHTMLTags = &card.CustomHTMLTags{Enabled: true}

	result := convertString(t, `:::card
![image alt](https://xxxxx.xxx/yyy.jpg)
Single-line text
:::
`, opts)

	assert.Equal(t,
		`<card><div><img src="https://xxxxx.xxx/yyy.jpg" alt="image alt"></div><div>Single-line text</div></card>`,
		normalize(string(result.HTML)))
}

const threeCards = `:::card{.card-1}
![card 1](https://xxxxx.xxx/yyy.jpg)
Card 1
:::
:::card{.card-2}
![card 2](https://xxxxx.xxx/yyy.jpg)
Card 2
:::
:::card{.card-3}
![card 3](https://xxxxx.xxx/yyy.jpg)
Card 3
:::
`

func gridCards(tag string) string {
	var b strings.Builder
	for _, n := range []string{"1", "2", "3"} {
		b.WriteString(`<` + tag + ` class="card-` + n + `">`)
		b.WriteString(`<div><img src="https://xxxxx.xxx/yyy.jpg" alt="card ` + n + `"></div>`)
		b.WriteString(`<div>Card ` + n + `</div>`)
		b.WriteString(`</` + tag + `>`)
	}
	return b.String()
}

func TestConvert_Grids(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  *card.Options
		want  string
	}{
		{
			name:  "grid and cards",
			input: "::::card-grid\n" + threeCards + "::::\n",
			opts:  bareOptions(),
			want:  `<div>` + gridCards("div") + `</div>`,
		},
		{
			name:  "grid with class",
			input: "::::card-grid{.card-grid}\n" + threeCards + "::::\n",
			opts:  bareOptions(),
			want:  `<div class="card-grid">` + gridCards("div") + `</div>`,
		},
		{
			name:  "grid with label",
			input: "::::card-grid[Card grid label]\n" + threeCards + "::::\n",
			opts:  bareOptions(),
			want:  `<div><p>Card grid label</p>` + gridCards("div") + `</div>`,
		},
		{
			name:  "grid without cards",
			input: "::::card-grid\n::::\n",
			opts:  bareOptions(),
			want:  `<div></div>`,
		},
		{
			name:  "custom tags",
			input: "::::card-grid\n" + threeCards + "::::\n",
			opts: func() *card.Options {
				opts := bareOptions()
				opts.CustomHTMLTags = &card.CustomHTMLTags{Enabled: true}
				return opts
			}(),
			want: `<card-grid>` + gridCards("card") + `</card-grid>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := convertString(t, tt.input, tt.opts)
			assert.Equal(t, normalize(tt.want), normalize(string(result.HTML)))
		})
	}
}

func TestConvert_DefaultContainerClasses(t *testing.T) {
	t.Parallel()

	result := convertString(t, `:::card[Sunset]{.featured}
![](sunset.jpg)
An evening at the coast.
:::
`, nil)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.HTML))
	require.NoError(t, err)

	cardSel := doc.Find("div.featured")
	require.Equal(t, 1, cardSel.Length())
	assert.Equal(t, 2, cardSel.Children().Length())

	img := cardSel.Find("div.image-container > img")
	require.Equal(t, 1, img.Length())
	alt, _ := img.Attr("alt")
	assert.Equal(t, "Sunset", alt)
	src, _ := img.Attr("src")
	assert.Equal(t, "sunset.jpg", src)

	assert.Equal(t, "An evening at the coast.",
		strings.TrimSpace(cardSel.Find("div.content-container").Text()))
}

func TestConvert_LabelWithPunctuationFillsAlt(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"x < y", "a [b] c", "Tom & Jerry"} {
		result := convertString(t, ":::card["+label+"]\n![](a.jpg)\ntext\n:::\n", nil)

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.HTML))
		require.NoError(t, err)

		alt, ok := doc.Find("div.image-container > img").Attr("alt")
		require.True(t, ok, label)
		assert.Equal(t, label, alt)
	}
}

func TestConvert_ConfiguredClassesOverrideSource(t *testing.T) {
	t.Parallel()

	opts := &card.Options{
		CardClass:     ptr("tile"),
		CardGridClass: ptr("tiles"),
	}
	result := convertString(t, "::::card-grid{.gallery}\n"+threeCards+"::::\n", opts)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.HTML))
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Find(".gallery").Length())
	assert.Equal(t, 1, doc.Find("div.tiles").Length())
	assert.Equal(t, 3, doc.Find("div.tiles > div.tile").Length())
	assert.Equal(t, 0, doc.Find(".card-1, .card-2, .card-3").Length())
}

func TestConvert_InvalidCardIsRenderedAsPlainContainer(t *testing.T) {
	t.Parallel()

	result := convertString(t, `:::card{.broken}
Just text, no image.
:::
`, nil)

	assert.Equal(t, `<div><p>Just text, no image.</p></div>`, normalize(string(result.HTML)))

	require.Len(t, result.Report.Outcomes, 1)
	assert.False(t, result.Report.Outcomes[0].Rewritten)
	assert.Equal(t, card.SkipInvalidMedia, result.Report.Outcomes[0].Reason)
}

func TestConvert_Report(t *testing.T) {
	t.Parallel()

	src := "::::card-grid\n" + threeCards + ":::card\n:::\n::::\n"
	result := convertString(t, src, nil)

	assert.Equal(t, 1, result.Report.GridsRewritten)
	assert.Equal(t, 3, result.Report.CardsRewritten)
	assert.Equal(t, 1, result.Report.Skipped)

	skips := result.Report.Skips()
	require.Len(t, skips, 1)
	assert.Equal(t, card.SkipEmpty, skips[0].Reason)
	assert.Equal(t, 14, skips[0].Node.Position().Line)
}

func TestConvert_TreeIsRewritten(t *testing.T) {
	t.Parallel()

	result := convertString(t, threeCards, nil)

	require.NotNil(t, result.Tree)
	assert.Equal(t, "doc.md", result.Tree.Path)
	first := result.Tree.Root.FirstChild
	require.NotNil(t, first)
	require.NotNil(t, first.Hint)
	assert.Equal(t, card.TagDiv, first.Hint.TagName)
	assert.Equal(t, 2, first.ChildCount())
}

func TestConvert_GFM(t *testing.T) {
	t.Parallel()

	conv := convert.New(goldmark.FlavorGFM, nil)
	assert.Equal(t, goldmark.FlavorGFM, conv.Flavor())

	result, err := conv.Convert(context.Background(), "", []byte(`:::card
![photo](p.jpg)
Now ~~cheap~~ free
:::
`))
	require.NoError(t, err)
	assert.Contains(t, string(result.HTML), "<del>cheap</del>")
	assert.Equal(t, 1, result.Report.CardsRewritten)
}

func TestConvert_LogsSkippedDirectives(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	conv := convert.New(goldmark.FlavorCommonMark, nil)
	_, err := conv.Convert(ctx, "notes.md", []byte("# Notes\n\n:::card\n:::\n"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "directive left unchanged")
	assert.Contains(t, out, "notes.md")
	assert.Contains(t, out, "3:1")
	assert.Contains(t, out, "directive has no children")
}

func TestConvert_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := convert.New(goldmark.FlavorCommonMark, nil)
	result, err := conv.Convert(ctx, "doc.md", []byte(threeCards))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
