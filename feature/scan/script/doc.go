// Package script parses and regenerates the configuration-script format.
//
// The format is a sequence of pool assignments:
//
//	ALL_ITEM_POOL = [
//	    "ITEM_ONE",
//	    "ITEM_TWO",
//
//	    # Category Label
//	    "ITEM_THREE",
//	]
//
// Parse extracts a normalized item registry (labels, pools, categories,
// ordinals); Render is its inverse, a pure function from item entries back
// to script text. Writing is always a whole-file regeneration from the
// canonical report, never in-place text surgery, so round trips are stable
// and edits cannot corrupt or duplicate entries.
package script
