package classifier

import (
	"fmt"
	"strings"
)

// buildPrompt renders the classification prompt for one creator. The
// response contract is a strict pipe-delimited sextuple; see
// parseResponse.
func buildPrompt(signature, displayName, handle, context string, isOfficial bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Analyze the following creator profile and classify them into ONE of these three categories:

Creator Username: %s
Display Name: %s
Bio/Signature: %s
Is Official Account: %t
Content Context: %s

CLASSIFICATION CATEGORIES:

1. OFFICIAL_BRAND: Official brand/company accounts or primary promotional accounts
   - Username contains the brand/product name, or exactly matches a major brand (nike, apple, google)
   - Bio directly promotes their own product/service with app store links or download calls
   - BRAND.CATEGORY FORMAT: usernames like brand.beauty, brand.official, brand.store
   - DOMAIN-LIKE FORMAT: usernames ending in .id, .app, .store, .shop, .ca, .com, .co, .uk, .us, .ph
   - REGIONAL BRAND FORMAT: brand names with regional identifiers (garniermenid, dovemenarabia)
   - Accounts offering affiliate commissions are often official brand accounts

2. MATRIX_ACCOUNT: Clear connection to a specific brand/business but NOT the main official account
   - Bio mentions working for/with a specific company or brand
   - Business representatives: barber shops, restaurants, salons, local stores
   - Look for business addresses, phone numbers, "Location:", shop names, service descriptions
   - Only use this if the account is clearly NOT the main official account

3. UGC_CREATOR: Creators with clear brand partnership signals OR regular users
   - Partnership signals: #ad, #sponsored, #partner tags, discount codes, affiliate links, "Use my code X"
   - CRITICAL: only assign a brand name if clear partnership signals exist
   - NO brand name for product reviewers, general content creators, personal accounts
   - NEVER assign random words, people names, or generic terms as brand names

CRITICAL CLASSIFICATION RULES:
1. Username exactly matching a major brand name means OFFICIAL_BRAND
2. OFFICIAL_BRAND signals override MATRIX_ACCOUNT classification
3. Bio with business location/contact info representing a local business means MATRIX_ACCOUNT
4. Personal creators doing their profession individually are UGC_CREATOR; business representatives are MATRIX_ACCOUNT
5. Only ONE category may be True, the others must be False

Respond with EXACTLY 6 values separated by pipes (|):

1. OFFICIAL_BRAND [True/False]
2. MATRIX_ACCOUNT [True/False]
3. UGC_CREATOR [True/False]
4. Brand Name [specific brand name or "None"]
5. Confidence Score [0.0-1.0]
6. Analysis Details [brief explanation of the classification and any partnership signals found]

Examples:
- True|False|False|Nike|0.95|Username exactly matches major brand 'nike' - this is the official Nike account
- False|True|False|Bob Barber Shop|0.90|Bio mentions 'Bob Barber Shop Location: new Cairo' - represents specific local business
- False|False|True|Nike|0.80|Profile shows #nikeambassador and discount codes for Nike products
- False|False|True|None|0.90|General reviewer with no clear brand partnership signals or sponsorship disclosure

Format: True|False|False|BrandName|0.9|Brief explanation`,
		handle, displayName, signature, isOfficial, context)

	return b.String()
}

// looksOfficial flags profiles whose combined text carries official
// account indicators. Fed into the prompt as a hint.
func looksOfficial(handle, displayName, signature string) bool {
	combined := strings.ToLower(handle + " " + displayName + " " + signature)
	return containsAny(combined, officialIndicators)
}
