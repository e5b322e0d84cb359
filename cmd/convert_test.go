package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const rosaPage = `<html><body>
<h1>Beach Rose (Rosa rugosa)</h1>
<table><tbody>
<tr><td>Type</td><td>Shrub</td></tr>
<tr><td>Zone</td><td>3-9</td></tr>
</tbody></table>
<img title="Beach Rose (Rosa rugosa)" src="images/wrong.jpg">
</body></html>`

const indexPage = `<html><body><h1>Plants</h1><ul><li>none</li></ul></body></html>`

const rosaText = `Rosa rugosa (Beach Rose)

Type: Shrub
Zone: 3-9
Colour: pink
Something Special or Unique: Edible hips
Alba
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// runCmd executes the root command and returns stdout, stderr and the error.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Keep a developer's ~/.plantpipe.yaml out of the run.
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// --- HTML Conversion Tests ---

func TestConvert_HTMLDefaultsToStdout(t *testing.T) {
	dir := t.TempDir()
	page := writeInput(t, dir, "rosa.html", rosaPage)
	index := writeInput(t, dir, "index.html", indexPage)

	stdout, _, err := runCmd(t, "convert", "-f", page, index)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	want := strings.Join([]string{
		`      <li><a href="plant-details.html?name=rosa-rugosa">Rosa rugosa (Beach Rose)</a></li>`,
		`git mv images/wrong.jpg images/rosa-rugosa.jpg`,
		`Rosa rugosa|Beach Rose|Shrub|3-9|`,
	}, "\n") + "\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestConvert_SeparateStreams(t *testing.T) {
	dir := t.TempDir()
	page := writeInput(t, dir, "rosa.html", rosaPage)
	csvPath := filepath.Join(dir, "plants.csv")
	linksPath := filepath.Join(dir, "links.html")
	imgPath := filepath.Join(dir, "rename.sh")

	stdout, _, err := runCmd(t, "convert", "-f", page, "-c", csvPath, "-a", linksPath, "-i", imgPath)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty, got %q", stdout)
	}

	check := func(path, want string) {
		t.Helper()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", filepath.Base(path), data, want)
		}
	}
	check(csvPath, "Rosa rugosa|Beach Rose|Shrub|3-9|\n")
	check(imgPath, "git mv images/wrong.jpg images/rosa-rugosa.jpg\n")
	check(linksPath, `      <li><a href="plant-details.html?name=rosa-rugosa">Rosa rugosa (Beach Rose)</a></li>`+"\n")
}

// --- Text Conversion Tests ---

func TestConvert_TextWarningsOnStderr(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa.txt", rosaText)
	csvPath := filepath.Join(dir, "plants.csv")

	stdout, stderr, err := runCmd(t, "convert", "-f", rec, "-c", csvPath, "--header")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	if !strings.Contains(stdout, `<li><a href="plant-details.html?name=rosa-rugosa">`) {
		t.Errorf("stdout missing link: %q", stdout)
	}
	if !strings.Contains(stderr, `# Unknown feature "Colour": pink`) {
		t.Errorf("stderr missing warning: %q", stderr)
	}

	data, _ := os.ReadFile(csvPath)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Scientific Name|Common Name|Type|Zone|") || !strings.HasSuffix(lines[0], "|Image Titles") {
		t.Errorf("header = %q", lines[0])
	}
	wantRow := "Rosa rugosa|Beach Rose|Shrub|3-9" + strings.Repeat("|", 10) + "|Edible hips|Rosa rugosa 'Alba'"
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestConvert_LegacyKind(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "weed.txt", "Asclepias tuberosa (Butterfly Weed)\nType: Perennial\nAttracts: Butterflies\n")

	stdout, _, err := runCmd(t, "convert", "--kind", "legacy-text", "-f", rec, "-a", filepath.Join(dir, "links.html"))
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if stdout != "Asclepias tuberosa|Butterfly Weed|Perennial|Butterflies||\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

// --- Catalog Tests ---

func TestConvert_JSONCatalog(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa.txt", rosaText)
	jsonPath := filepath.Join(dir, "out", "plants.json")

	_, _, err := runCmd(t, "convert", "-f", rec, "-c", filepath.Join(dir, "plants.csv"),
		"-a", filepath.Join(dir, "links.html"), "-i", filepath.Join(dir, "diag.txt"), "--json", jsonPath)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("catalog is not JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["Something Special or Unique"] != "Edible hips" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestConvert_DuplicateCatalogPath(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa.txt", rosaText)

	_, _, err := runCmd(t, "convert", "-f", rec, "--json", "x", "--yaml", "x")
	if err == nil || !strings.Contains(err.Error(), "both write x") {
		t.Errorf("error = %v", err)
	}
}

func TestConvert_CommaInFileName(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa,rugosa.txt", rosaText)

	stdout, _, err := runCmd(t, "convert", "-f", rec, "-a", filepath.Join(dir, "links.html"),
		"-i", filepath.Join(dir, "diag.txt"))
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.HasPrefix(stdout, "Rosa rugosa|Beach Rose|Shrub|3-9|") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConvert_WarnsWhenNothingConverted(t *testing.T) {
	dir := t.TempDir()
	index := writeInput(t, dir, "index.html", indexPage)

	stdout, stderr, err := runCmd(t, "convert", "-f", index)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing for a non-plant page", stdout)
	}
	if !strings.Contains(stderr, "no plant records found") {
		t.Errorf("stderr = %q", stderr)
	}
}

// --- Validation Tests ---

func TestConvert_MissingFileFailsBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "rosa.txt", rosaText)
	csvPath := filepath.Join(dir, "plants.csv")

	_, _, err := runCmd(t, "convert", "-f", good, filepath.Join(dir, "missing.txt"), "-c", csvPath)
	if err == nil || !strings.Contains(err.Error(), "is not a valid path") {
		t.Fatalf("error = %v", err)
	}
	if _, statErr := os.Stat(csvPath); !os.IsNotExist(statErr) {
		t.Error("CSV output should not be created when an input is invalid")
	}
}

func TestConvert_NoFiles(t *testing.T) {
	_, _, err := runCmd(t, "convert")
	if err == nil || !strings.Contains(err.Error(), "--files") {
		t.Errorf("error = %v", err)
	}
}

func TestConvert_BadKind(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa.txt", rosaText)

	_, _, err := runCmd(t, "convert", "--kind", "pdf", "-f", rec)
	if err == nil || !strings.Contains(err.Error(), "kind must be one of") {
		t.Errorf("error = %v", err)
	}
}

func TestConvert_VerboseProgress(t *testing.T) {
	dir := t.TempDir()
	rec := writeInput(t, dir, "rosa.txt", rosaText)

	_, stderr, err := runCmd(t, "convert", "-v", "-f", rec, "-i", filepath.Join(dir, "diag.txt"))
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(stderr, "processing file 1/1") {
		t.Errorf("stderr = %q", stderr)
	}
}
