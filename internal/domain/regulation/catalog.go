package regulation

// Well-known regulation identifiers.
const (
	GLBA     = "GLBA"
	FCRA     = "FCRA"
	TILA     = "TILA"
	EFTA     = "EFTA"
	CCPACPRA = "CCPA_CPRA"
	NYDFS    = "NY_DFS"
)

// catalog holds the static commercial regulation definitions. The clause
// ordering within each definition is significant and preserved through the
// whole pipeline.
func catalog() []Definition {
	return []Definition{
		{
			ID: GLBA,
			Clauses: []ClauseRequirement{
				{
					Name:        "Financial Privacy Notice",
					Description: "Gramm-Leach-Bliley Act privacy requirements for financial institutions",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"Privacy notice delivery",
						"Opt-out mechanisms",
						"Information sharing policies",
						"Safeguards rule compliance",
						"Annual privacy notices",
					},
					LegalCitation: "15 U.S.C. § 6801-6809",
				},
				{
					Name:        "Data Safeguards Program",
					Description: "Information security program for customer data protection",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"Written security program",
						"Employee training",
						"Access controls",
						"Data encryption",
						"Incident response plan",
					},
					LegalCitation: "16 CFR Part 314",
				},
			},
			Jurisdictions: []string{"US"},
			Industries:    []string{"financial", "banking", "lending", "insurance"},
		},
		{
			ID: FCRA,
			Clauses: []ClauseRequirement{
				{
					Name:        "Credit Reporting Authorization",
					Description: "Fair Credit Reporting Act requirements for credit checks",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"Consumer authorization",
						"Permissible purpose certification",
						"Adverse action notices",
						"Dispute investigation procedures",
						"Accuracy requirements",
					},
					LegalCitation: "15 U.S.C. § 1681 et seq.",
				},
			},
			Jurisdictions: []string{"US"},
			Industries:    []string{"financial", "employment", "lending", "housing"},
		},
		{
			ID: TILA,
			Clauses: []ClauseRequirement{
				{
					Name:        "Truth in Lending Disclosures",
					Description: "Regulation Z requirements for loan cost disclosures",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"APR disclosure",
						"Finance charge calculation",
						"Payment schedule",
						"Total payments disclosure",
						"Right of rescission",
					},
					LegalCitation: "15 U.S.C. § 1601 et seq.",
				},
			},
			Jurisdictions: []string{"US"},
			Industries:    []string{"lending", "financial", "auto_finance", "mortgage"},
		},
		{
			ID: EFTA,
			Clauses: []ClauseRequirement{
				{
					Name:        "Electronic Fund Transfer Authorization",
					Description: "Regulation E requirements for electronic payments",
					RiskLevel:   RiskMedium,
					Requirements: []string{
						"EFT authorization",
						"Error resolution procedures",
						"Liability limitations",
						"Receipt requirements",
						"Periodic statements",
					},
					LegalCitation: "15 U.S.C. § 1693 et seq.",
				},
			},
			Jurisdictions: []string{"US"},
			Industries:    []string{"financial", "banking", "lending", "payment_processing"},
		},
		{
			ID: CCPACPRA,
			Clauses: []ClauseRequirement{
				{
					Name:        "California Consumer Privacy Rights",
					Description: "California Consumer Privacy Act and Privacy Rights Act compliance",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"Right to know disclosures",
						"Right to delete procedures",
						"Right to opt-out of sales",
						"Non-discrimination policy",
						"Data processing agreements",
					},
					LegalCitation: "Cal. Civ. Code § 1798.100 et seq.",
				},
			},
			Jurisdictions: []string{"US_CA", "US"},
			Industries:    []string{"all"},
		},
		{
			ID: NYDFS,
			Clauses: []ClauseRequirement{
				{
					Name:        "NYDFS Cybersecurity Requirements",
					Description: "New York Department of Financial Services cybersecurity regulation",
					RiskLevel:   RiskHigh,
					Requirements: []string{
						"Cybersecurity program",
						"Chief Information Security Officer",
						"Penetration testing",
						"Audit trail systems",
						"Incident response plan",
					},
					LegalCitation: "23 NYCRR Part 500",
				},
			},
			Jurisdictions: []string{"US_NY", "US"},
			Industries:    []string{"financial", "insurance", "banking"},
		},
	}
}

// jurisdictionMap maps jurisdiction codes to their default regulation sets.
func jurisdictionMap() map[string][]string {
	return map[string][]string{
		"US":     {GLBA, FCRA, TILA, EFTA, CCPACPRA},
		"US_CA":  {GLBA, FCRA, TILA, EFTA, CCPACPRA, NYDFS},
		"US_NY":  {GLBA, FCRA, TILA, EFTA, CCPACPRA, NYDFS},
		"global": {CCPACPRA},
	}
}

// industryMap maps industry codes to their default regulation sets.
func industryMap() map[string][]string {
	return map[string][]string{
		"financial":    {GLBA, FCRA, TILA, EFTA, NYDFS},
		"banking":      {GLBA, FCRA, TILA, EFTA, NYDFS},
		"lending":      {GLBA, FCRA, TILA, EFTA},
		"insurance":    {GLBA, NYDFS},
		"auto_finance": {GLBA, FCRA, TILA, EFTA},
		"general":      {CCPACPRA},
	}
}
