/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "boylstonchessclub-tiebreak/0.3.0 (+https://github.com/mikeb26/boylstonchessclub-tiebreak)"
	WebCacheBucket = "bopmatic-boylstonchessclub-tdbot-prod-webcache"

	// WebCachePrefix keeps tiebreak entries apart from the tdbot's
	// entries in the shared bucket.
	WebCachePrefix = "tiebreak"

	USCFRatingsAPI     = "https://ratings-api.uschess.org/api/v1"
	BccUSCFAffiliateID = "A5000408"

	// defaults for the standings and tiebreak commands
	DefaultTiebreaks  = "SCORE,BH-C1,BH,SB"
	DefaultAdjustment = "FIDE_2023"
)
