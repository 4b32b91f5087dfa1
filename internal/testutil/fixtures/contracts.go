// Package fixtures holds shared contract text samples for tests.
package fixtures

// LendingContract mentions loan, financing and interest rate terms but
// carries no privacy language and no APR disclosure.
const LendingContract = `COMMERCIAL LOAN AGREEMENT

This agreement governs the loan extended by the Lender to the Borrower.
The Borrower agrees to repay the principal with interest rate as set out in
Schedule A. The financing arrangement includes a payment schedule with
monthly installments. Late payment incurs additional charges on outstanding
debt. Credit terms are subject to periodic review.`

// PrivacyContract mentions personal data handling and a privacy policy.
const PrivacyContract = `SERVICE AGREEMENT

The Provider processes personal data on behalf of the Customer in accordance
with the Provider's privacy policy. Consumer requests regarding the right to
know, the right to delete, and the right to opt-out of sales shall be
honored without discrimination. Data processing agreements are incorporated
by reference.`

// NeutralContract carries none of the financial, privacy or security
// trigger terms.
const NeutralContract = `CATERING SERVICES AGREEMENT

The Caterer shall provide meals for corporate events as scheduled. Menus
are agreed one week in advance. Invoices are due net thirty. Either party
may terminate with two weeks notice.`

// CompliantFinancialContract covers the GLBA privacy and safeguards
// language well enough to satisfy the clause presence heuristic.
const CompliantFinancialContract = `FINANCIAL SERVICES AGREEMENT

The Institution shall deliver an annual privacy notice describing its
information sharing policies and opt out mechanisms, maintaining a privacy
policy consistent with confidentiality obligations. The Institution
maintains a written security program with employee training, access
controls, data encryption and an incident response plan for data
protection. Credit decisions follow consumer authorization, with adverse
action notices and dispute investigation procedures. The APR and annual
percentage rate are disclosed together with the finance charge, payment
schedule and total payments disclosure. Right of rescission applies. EFT
authorization, error resolution procedures, liability limitations, receipt
requirements and periodic statements govern electronic fund transfers.`
