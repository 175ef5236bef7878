package core

import (
	"math"

	goerrors "github.com/goliatone/go-errors"
)

// EntitlementsSetVersionScale is the factor used to pack the
// entitlements-set version into the fractional part of the composite
// user-entitlements version double.
const EntitlementsSetVersionScale = 100000

// SplitVersion decomposes a composite version double into the user
// entitlements version and the entitlements-set version. The input must be
// non-negative and must carry no more precision than the scale can encode:
// the decomposition is reconstructed and compared against the input so that
// silent precision loss is rejected instead of truncated.
func SplitVersion(version float64) (int64, int64, error) {
	if math.IsNaN(version) || math.IsInf(version, 0) {
		return 0, 0, newEntitlementsError(
			"version not finite",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}
	if version < 0 {
		return 0, 0, newEntitlementsError(
			"version negative",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}

	userVersion := int64(math.Round(version))
	setVersion := int64(math.Round(math.Mod(version*EntitlementsSetVersionScale, EntitlementsSetVersionScale)))

	reconstructed := float64(userVersion) + float64(setVersion)/EntitlementsSetVersionScale
	if reconstructed != version {
		return 0, 0, newEntitlementsError(
			"version too precise",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}
	return userVersion, setVersion, nil
}
