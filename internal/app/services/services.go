package services

// Services defined in this package:
// - AuthService: registration (whitelist-gated), login, token refresh
// - ImportService: JSON student and bank statement imports
// - ReconcileService: VS matching, auto-pairing, installments report
// - StatsService: financial aggregates and tier tabulation
// - MailService: per-recipient notification relay
// - StudentService: roster management and the member self-service view
// - PaymentService: payment ledger management
// - UserService: user, whitelist and access request administration
