package model

import "time"

// DemoItems returns a canned vault covering all four item types, used by the
// --demo flag to explore the UI without a bw installation.
func DemoItems() []VaultItem {
	now := time.Now().UTC()
	return []VaultItem{
		{
			ID:   "demo-1",
			Name: "GitHub",
			Type: TypeLogin,
			Login: &LoginData{
				Username: "john.doe@example.com",
				Password: "super_secure_password_123",
				TOTP:     "JBSWY3DPEHPK3PXP",
				URIs:     []URI{{URI: "https://github.com"}},
			},
			Notes:        "Main GitHub account for work projects",
			Favorite:     true,
			RevisionDate: now,
		},
		{
			ID:   "demo-2",
			Name: "AWS Console",
			Type: TypeLogin,
			Login: &LoginData{
				Username: "admin@company.com",
				Password: "aws_complex_pass_456",
				TOTP:     "JBSWY3DPEHPK3PXQ",
				URIs:     []URI{{URI: "https://console.aws.amazon.com"}},
			},
			Notes:        "Production AWS account - handle with care!",
			Favorite:     true,
			RevisionDate: now,
		},
		{
			ID:   "demo-3",
			Name: "Gmail",
			Type: TypeLogin,
			Login: &LoginData{
				Username: "john.doe@gmail.com",
				Password: "gmail_secure_789",
				URIs:     []URI{{URI: "https://mail.google.com"}},
			},
			Notes:        "Personal email account",
			RevisionDate: now,
		},
		{
			ID:           "demo-4",
			Name:         "Wifi Recovery Codes",
			Type:         TypeSecureNote,
			Notes:        "Router admin: 192.168.1.1\n\n- code one\n- code two",
			RevisionDate: now,
		},
		{
			ID:   "demo-5",
			Name: "Company Visa",
			Type: TypeCard,
			Card: &CardData{
				Brand:          "Visa",
				CardholderName: "John Doe",
				Number:         "4111111111111111",
				ExpMonth:       "12",
				ExpYear:        "2027",
				Code:           "123",
			},
			RevisionDate: now,
		},
		{
			ID:   "demo-6",
			Name: "Passport",
			Type: TypeIdentity,
			Identity: &IdentityData{
				FirstName:      "John",
				LastName:       "Doe",
				Email:          "john.doe@example.com",
				PassportNumber: "X1234567",
				Country:        "US",
			},
			RevisionDate: now,
		},
	}
}
