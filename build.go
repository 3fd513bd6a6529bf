//go:build ignore

// build.go - gasviz build helper
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: build, test, run, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var (
	distDir = "dist"

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
)

func main() {
	target := flag.String("target", "build", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	start := time.Now()
	switch *target {
	case "build":
		build(*verbose)
	case "test":
		runTests(*verbose)
	case "run":
		build(*verbose)
		runBinary()
	case "clean":
		clean()
	default:
		printError(fmt.Sprintf("Unknown target: %s", *target))
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Done in %s", time.Since(start).Round(time.Millisecond)))
}

func binaryPath() string {
	name := "gasviz"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(distDir, name)
}

func build(verbose bool) {
	printInfo("Building gasviz...")

	args := []string{"build", "-ldflags", "-s -w", "-o", binaryPath(), "./cmd/gasviz"}
	if verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}
	run("go", args, verbose)

	if info, err := os.Stat(binaryPath()); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", binaryPath(), float64(info.Size())/1024/1024))
	}
}

func runTests(verbose bool) {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	run("go", append(args, "./..."), true)
	printSuccess("All tests passed")
}

func runBinary() {
	printInfo("Rendering outputs...")
	run(binaryPath(), nil, true)
}

func clean() {
	printInfo("Cleaning build artifacts, outputs and logs...")
	for _, dir := range []string{distDir, "output", "log"} {
		if err := os.RemoveAll(dir); err != nil {
			printWarning(fmt.Sprintf("Failed to remove %s: %v", dir, err))
		}
	}
	printSuccess("Cleaned")
}

func run(name string, args []string, stream bool) {
	cmd := exec.Command(name, args...)
	if stream {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("%s failed: %v", name, err))
		os.Exit(1)
	}
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s[WARNING]%s %s\n", colorYellow, colorReset, msg)
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  build   Build dist/gasviz (default)")
	fmt.Println("  test    Run all Go tests with the race detector")
	fmt.Println("  run     Build, then render the three outputs")
	fmt.Println("  clean   Remove dist/, output/ and log/")
}
