package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if testing.Short() {
		t.Skip("builds binaries")
	}
	// 1. Create a temporary directory
	tempDir := t.TempDir()

	// 2. Create sets-hello executable
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvStore, EnvStore, EnvKey, EnvKey, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, ExtensionPrefix+"hello")

	// Write source to a temporary file
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write sets-hello source: %v", err)
	}

	// Compile sets-hello
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile sets-hello: %v", err)
	}

	// 3. Compile the main sets binary
	setsBinaryPath := filepath.Join(tempDir, "sets")
	cmd = exec.Command("go", "build", "-o", setsBinaryPath, "../sets")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile sets binary: %v", err)
	}

	// Define random values for global flags
	expectedStore := "sqlite:" + filepath.Join(tempDir, "random.db")
	expectedKey := "my-sets"
	expectedVerbose := true

	// 4. Call sets binary with extension and global flags
	args := []string{
		"-store", expectedStore,
		"-key", expectedKey,
		"-v",
		"hello", // The extension subcommand
		"world",
	}

	setsCmd := exec.Command(setsBinaryPath, args...)
	setsCmd.Dir = tempDir
	oldPath := os.Getenv("PATH")
	setsCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + oldPath}

	var stdout, stderr bytes.Buffer
	setsCmd.Stdout = &stdout
	setsCmd.Stderr = &stderr

	if err := setsCmd.Run(); err != nil {
		t.Fatalf("sets command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	// 5. Verify output
	output := stdout.String()

	expectedLines := []string{
		EnvStore + "=" + expectedStore,
		EnvKey + "=" + expectedKey,
		EnvVerbose + "=" + strconv.FormatBool(expectedVerbose),
		"args=[world]",
	}
	for _, expectedLine := range expectedLines {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}

	if stderr.Len() > 0 {
		t.Logf("Stderr from sets command: %s", stderr.String())
	}
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("nope", nil); found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}
