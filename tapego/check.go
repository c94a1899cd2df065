package tapego

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"
)

// Check type-checks the generated package in dir.
// dir must be inside a module that can resolve the harness import.
func Check(ctx context.Context, dir string) error {
	config := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Dir: dir,
	}
	pkgs, err := packages.Load(config, ".")
	if err != nil {
		return err
	}

	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, err := range pkg.Errors {
			errs = append(errs, err)
		}
	})
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, pkg := range pkgs {
		if pkg.Name != "main" {
			return fmt.Errorf("%s: package %s, want main", dir, pkg.Name)
		}
	}
	return nil
}
