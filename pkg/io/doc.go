// Package io reads and writes flow files.
//
// # Overview
//
// A flow file lists the nodes of a Sankey diagram with their level and
// the weighted flows between them. Four encodings are supported, chosen
// by file extension:
//
//   - .json: [ReadJSON], [WriteJSON]
//   - .yaml, .yml: [ReadYAML], [WriteYAML]
//   - .toml: [ReadTOML], [WriteTOML]
//   - .db, .sqlite, .sqlite3: [ReadSQLite], [WriteSQLite]
//
// [Import] and [Export] dispatch on the extension of a path.
//
// # JSON Format
//
//	{
//	  "title": "Energy",
//	  "nodes": [
//	    {"id": 1, "name": "Coal", "level": 0, "color": "#3b3b3b"},
//	    {"id": 2, "name": "Power", "level": 1}
//	  ],
//	  "flows": [
//	    {"from": 1, "to": 2, "weight": 30}
//	  ]
//	}
//
// Node IDs must be positive and unique. Colors use "#rrggbb" or
// "#rrggbbaa" notation; nodes without one are drawn in the default item
// color. Node order matters: within a level, nodes are stacked in reverse
// file order, so the last node of a level sits at the bottom.
//
// # SQLite Format
//
// A SQLite flow file has a "nodes" table (id, name, level, color), a
// "flows" table (source, target, weight) and an optional "meta" table with
// a "title" row. Rows are read in rowid order, so a database written by a
// script keeps its insertion order just like a text file.
//
// # Round Trips
//
// Every writer preserves node and flow order, colors and the title, so a
// graph exported in any format and imported again produces the same layout.
package io
