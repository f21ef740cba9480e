package testutils

import (
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// CheckGoldenFile compares actual with the content of expectFilePath.
// the file is created from actual when it doesn't exist yet.
func CheckGoldenFile(t TestingT, actual []byte, expectFilePath string) {
	t.Helper()

	expect, err := os.ReadFile(expectFilePath)
	if os.IsNotExist(err) {
		err = os.MkdirAll(filepath.Dir(expectFilePath), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(expectFilePath, actual, 0444)
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("golden file %s is created", expectFilePath)
		return
	} else if err != nil {
		t.Error(err)
		return
	}

	if string(expect) == string(actual) {
		return
	}

	d, err := Diff(string(expect), string(actual))
	if err != nil {
		t.Fatal(err)
	}
	t.Errorf("%s mismatch\n%s", expectFilePath, d)
}

// Diff returns the unified diff of two texts.
func Diff(expect, actual string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expect),
		B:        difflib.SplitLines(actual),
		FromFile: "expect",
		ToFile:   "actual",
		Context:  5,
	})
}
