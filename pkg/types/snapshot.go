package types

// snapshot:
//   version: number // increments on every broadcast
//   frame:
//     phase: "idle" | "spinning"
//     layout: "reel" | "pie"
//     position: number // normalised into [0, cycle)
//     cycle: number    // n * slot_size (reel) or 2π (pie)
//     progress: number // 0..1 while spinning, 0 at rest
//     index: number    // option under the pointer
//     width: number
//     height: number
//   draw: Command[] // replay in order onto a 2D canvas context
//     op: "clear" | "fillRect" | "strokeRect" | "fillArc" | "strokeArc" |
//         "fillText" | "save" | "restore" | "translate" | "rotate"
//     args: number[] // positional, e.g. fillArc [cx, cy, r, start, end]
//     color: string  // "#rrggbb"
//     width: number  // stroke width
//     text: string
//     font: string   // "bold 18px Arial"
//     align: "left" | "center" | "right"
//   options: { label: string, color: string }[] // only on join or when replaced
//   outcome: { spin_id: string, index: number, option: Option } // final frame of a spin
