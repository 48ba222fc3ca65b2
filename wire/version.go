package wire

import (
	"golang.org/x/mod/semver"
)

// ProtocolVersionは、このパッケージが実装するプロトコルのバージョンです。
const ProtocolVersion = "1.0.0"

var (
	// minAcceptableVersion は、受け入れ可能な最小プロトコルバージョンです（この値を含む）。
	minAcceptableVersion = "v1.0.0"
	// maxAcceptableVersion は、受け入れ可能な最大プロトコルバージョンです（この値を含まない）。
	maxAcceptableVersion = "v2.0.0"
)

// isAcceptableProtocolVersion は、相手側のプロトコルバージョンが受け入れ可能かどうかを判定します。
func isAcceptableProtocolVersion(version string) bool {
	// semverパッケージは "v" プレフィックスが必要
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, minAcceptableVersion) >= 0 && semver.Compare(v, maxAcceptableVersion) < 0
}
