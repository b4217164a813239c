// Package triage_tools exposes the triage pipeline as MCP tools.
//
// Every tool is read-only on the mailbox: tools answer from the cached
// snapshot held by the server context and only the per-account sender
// selection is mutable. Results are JSON documents.
//
// Tools:
//   - triage_categorize: classify ad-hoc subject/snippet/from text
//   - triage_list_folder: messages of a folder, optionally searched
//   - triage_list_senders: filtered, searched and sorted sender list
//   - triage_toggle_sender_selection, triage_get_sender_selection,
//     triage_clear_sender_selection: manage the sender selection
//   - triage_smart_folders: derived category folders
//   - triage_stats: data behind the unread, noise and files statistics
//   - triage_refresh_mailbox: drop the cached snapshot and fetch again
package triage_tools
