// Package registration holds the applicant registration domain: applicants
// (postulantes), polling venues (recintos), staff reviews, the system
// open/closed switch and pre-uploaded documents.
package registration
