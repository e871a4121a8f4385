/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent = "tornelo-scoresheet/0.3.0 (+https://github.com/tornelo/scoresheet)"

	// WebCacheBucket holds cached pairing feeds; override with
	// $SCORESHEET_CACHE_BUCKET, or set it empty to skip S3.
	WebCacheBucket = "tornelo-scoresheet-prod-webcache"
	CacheBucketEnv = "SCORESHEET_CACHE_BUCKET"

	// pairings change between rounds, so keep cached copies short lived
	PairingsCacheTTL = 10 * time.Minute

	MaxPairingsBytes = 8 << 20
)
