// Package skill serves the agent onboarding SKILL.md document: the raw
// markdown at /SKILL.md for agents, and a rendered page at /skill for people.
package skill
