// Package accelerator selects and installs the PyTorch build matching the
// machine's CUDA toolkit. The install happens outside the lock file.
package accelerator

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AcceleratorInstaller = (*Installer)(nil)

var (
	versionDigits = regexp.MustCompile(`^\d+$`)
	cudaIndexTag  = regexp.MustCompile(`/cu(\d+)/?$`)
)

// Installer implements ports.AcceleratorInstaller through the resolver's pip interface.
type Installer struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewInstaller creates a new Installer.
func NewInstaller(runner ports.CommandRunner, logger ports.Logger) *Installer {
	return &Installer{runner: runner, logger: logger}
}

// Detect picks the variant for this machine. An explicit index URL wins over
// detection; otherwise the CUDA toolkit version selects the index and a
// missing toolkit selects the CPU build.
func (i *Installer) Detect(ctx context.Context, accel domain.AcceleratorSettings) domain.AcceleratorVariant {
	variant := domain.AcceleratorVariant{Packages: slices.Clone(accel.Packages)}

	if accel.IndexURL != "" {
		variant.IndexURL = accel.IndexURL
		if m := cudaIndexTag.FindStringSubmatch(accel.IndexURL); m != nil {
			variant.CUDAVersion = m[1]
		}
		i.logger.Debug("using configured accelerator index " + accel.IndexURL)
		return variant
	}

	variant.CUDAVersion = i.DetectCUDA(ctx, accel.CUDAProbe)
	variant.IndexURL = IndexURL(accel.IndexBase, variant.CUDAVersion)

	if variant.CUDAVersion == "" {
		i.logger.Info("CUDA toolkit not detected, selecting the CPU build")
	} else {
		i.logger.Info(fmt.Sprintf("detected CUDA toolkit %s (%s)", variant.CUDAVersion, variant.Name()))
	}
	return variant
}

// DetectCUDA asks the probe (normally nvcc) for its version and returns the
// compact form ("118" for 11.8). It returns "" when the probe is missing,
// fails, or prints nothing recognizable.
func (i *Installer) DetectCUDA(ctx context.Context, probe string) string {
	if probe == "" {
		return ""
	}

	res, err := i.runner.Run(ctx, domain.Command{Name: probe, Args: []string{"--version"}})
	if err != nil {
		i.logger.Debug(probe + " --version failed, assuming no CUDA toolkit")
		return ""
	}

	version, ok := ParseCUDAVersion(res.Stdout)
	if !ok {
		i.logger.Warn("could not read the CUDA version from " + probe + " output")
		return ""
	}
	return version
}

// ParseCUDAVersion extracts the toolkit release from `nvcc --version` output,
// e.g. "Cuda compilation tools, release 11.8, V11.8.89" yields "118".
func ParseCUDAVersion(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		idx := strings.LastIndex(lower, "release")
		if idx < 0 {
			continue
		}

		rest := strings.TrimSpace(lower[idx+len("release"):])
		release, _, _ := strings.Cut(rest, ",")
		version := strings.ReplaceAll(strings.TrimSpace(release), ".", "")
		if versionDigits.MatchString(version) {
			return version, true
		}
	}
	return "", false
}

// IndexURL returns the wheel index for a CUDA version, or the CPU index when cuda is empty.
func IndexURL(base, cuda string) string {
	base = strings.TrimSuffix(base, "/")
	if cuda == "" {
		return base + "/cpu"
	}
	return base + "/cu" + cuda
}

// Install installs the variant's packages into the environment. Nightly and
// test indexes only serve pre-releases, so --pre is added for them.
func (i *Installer) Install(ctx context.Context, settings domain.Settings, variant domain.AcceleratorVariant) error {
	cmd := InstallCommand(settings, variant)

	i.logger.Info(fmt.Sprintf("installing %s from %s", strings.Join(variant.Packages, ", "), variant.IndexURL))
	if variant.PreRelease() {
		i.logger.Info("nightly or test index detected, allowing pre-releases")
	}

	if _, err := i.runner.Run(ctx, cmd); err != nil {
		err = zerr.Wrap(err, domain.ErrAcceleratorInstallFailed.Error())
		err = zerr.With(err, "variant", variant.Name())
		return zerr.With(err, "index_url", variant.IndexURL)
	}

	i.logger.Info(fmt.Sprintf("installed %s (%s)", strings.Join(variant.Packages, ", "), variant.Name()))
	return nil
}

// InstallCommand builds the resolver invocation that installs variant.
func InstallCommand(settings domain.Settings, variant domain.AcceleratorVariant) domain.Command {
	args := make([]string, 0, len(variant.Packages)+7)
	args = append(args, "pip", "install")
	args = append(args, variant.Packages...)
	args = append(args, "--index-url", variant.IndexURL)
	if variant.PreRelease() {
		args = append(args, "--pre")
	}
	args = append(args, "--python", domain.EnvInterpreter(settings.EnvDir))

	return domain.Command{Name: settings.Resolver, Args: args, Dir: settings.Root}
}
